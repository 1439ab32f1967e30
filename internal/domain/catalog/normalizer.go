package catalog

import (
	"context"
	"fmt"

	"sensory-safari-api/internal/domain/animals"
	"sensory-safari-api/internal/platform/logger"
	"sensory-safari-api/internal/platform/metrics"
)

// Resultados por entrada (label de métricas).
const (
	OutcomeUpdated   = "updated"
	OutcomeUnmatched = "unmatched"
	OutcomeAmbiguous = "ambiguous"
	OutcomeFailed    = "failed"
)

// Catalog es lo que el normalizer necesita del servicio de animals.
type Catalog interface {
	List(ctx context.Context) ([]animals.Animal, error)
	Update(ctx context.Context, a animals.Animal) (animals.Animal, error)
}

type Options struct {
	// Rename también reemplaza Name por la forma canónica. Key nunca cambia.
	Rename bool
	// DryRun calcula el reporte sin escribir.
	DryRun bool

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

type Ambiguity struct {
	Name string
	Keys []string
}

type Failure struct {
	Name string
	Key  string
	Err  error
}

// Report resume una corrida. Updated y Unmatched tienen nombres canónicos.
type Report struct {
	Updated   []string
	Unmatched []string
	Ambiguous []Ambiguity
	Failed    []Failure
}

type Normalizer struct {
	catalog Catalog
	opts    Options
}

func NewNormalizer(c Catalog, opts Options) *Normalizer {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Normalizer{catalog: c, opts: opts}
}

// Run aplica la lista de referencia sobre los registros guardados.
// Nunca crea registros: lo que no matchea queda en el reporte.
func (n *Normalizer) Run(ctx context.Context, ref Reference) (Report, error) {
	var rep Report

	stored, err := n.catalog.List(ctx)
	if err != nil {
		return rep, fmt.Errorf("list animals: %w", err)
	}

	aliases := ref.Aliases
	if aliases == nil {
		aliases = DefaultAliases()
	}

	for _, e := range ref.Entries {
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		matches := findMatches(e.Name, stored, aliases)
		switch len(matches) {
		case 0:
			rep.Unmatched = append(rep.Unmatched, e.Name)
			n.record(OutcomeUnmatched)
			n.opts.Logger.Warn("no match for reference entry", map[string]any{"name": e.Name})
			continue
		case 1:
		default:
			keys := make([]string, 0, len(matches))
			for _, m := range matches {
				keys = append(keys, m.Key)
			}
			rep.Ambiguous = append(rep.Ambiguous, Ambiguity{Name: e.Name, Keys: keys})
			n.record(OutcomeAmbiguous)
			n.opts.Logger.Warn("ambiguous reference entry skipped", map[string]any{"name": e.Name, "keys": keys})
			continue
		}

		a := matches[0]
		a.Category = e.Category
		a.Habitat = e.Habitat
		a.Facts = e.Facts
		if n.opts.Rename {
			a.Name = e.Name
		}

		if !n.opts.DryRun {
			if _, err := n.catalog.Update(ctx, a); err != nil {
				rep.Failed = append(rep.Failed, Failure{Name: e.Name, Key: a.Key, Err: err})
				n.record(OutcomeFailed)
				n.opts.Logger.Error("update failed", map[string]any{"name": e.Name, "key": a.Key, "err": err})
				continue
			}
		}
		rep.Updated = append(rep.Updated, e.Name)
		n.record(OutcomeUpdated)
		n.opts.Logger.Info("updated", map[string]any{"name": e.Name, "key": a.Key, "dry_run": n.opts.DryRun})
	}
	return rep, nil
}

func (n *Normalizer) record(outcome string) {
	n.opts.Metrics.NormalizerEntry(outcome)
}

// findMatches compara contra Key. Un match directo tiene prioridad sobre uno
// por alias; dentro del mismo nivel, más de uno es ambigüedad.
func findMatches(name string, stored []animals.Animal, aliases AliasTable) []animals.Animal {
	want := Normalize(name)
	var direct, viaAlias []animals.Animal
	for _, a := range stored {
		got := Normalize(a.Key)
		switch {
		case got == want:
			direct = append(direct, a)
		case aliases.Matches(want, got):
			viaAlias = append(viaAlias, a)
		}
	}
	if len(direct) > 0 {
		return direct
	}
	return viaAlias
}
