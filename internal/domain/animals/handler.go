package animals

import (
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"time"

	"sensory-safari-api/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// multipartMemory es lo que se mantiene en memoria antes de volcar a disco.
const multipartMemory = 8 << 20

type HandlerOptions struct {
	// MaxUploadBytes limita el body completo del create. 0 => sin límite.
	MaxUploadBytes int64
	Logger         logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, opts HandlerOptions) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc, opts))
		ar.Post("/", createAnimalHandler(svc, opts))
	})
}

// createAnimalRequest es la versión JSON del create (solo URLs literales).
type createAnimalRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category" enums:"wild,farm,birds,insects"`
	Habitat     string `json:"habitat"`
	Facts       string `json:"facts"`
	Description string `json:"description"`
	Image       string `json:"image"` // URL literal
	Sound       string `json:"sound"` // URL literal
}

type mediaResponse struct {
	URL     string `json:"url"`
	AssetID string `json:"assetId"`
}

// animalResponse representa un animal del catálogo devuelto por la API.
type animalResponse struct {
	ID          string        `json:"id"`
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Category    Category      `json:"category"`
	Habitat     string        `json:"habitat"`
	Facts       string        `json:"facts"`
	Description string        `json:"description"`
	Image       mediaResponse `json:"image"`
	Audio       mediaResponse `json:"audio"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type errorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Devuelve todos los animales del catálogo, sin filtros y sin orden garantizado.
// @Tags animals
// @Produce json
// @Success 200 {array} animalResponse
// @Failure 500 {object} errorResponse
// @Router /animals [get]
func listAnimalsHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			logger.FromContext(r.Context(), opts.Logger).Error("list animals failed", map[string]any{"err": err})
			writeJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createAnimalHandler godoc
// @Summary Crear animal
// @Description Crea un animal. En multipart, los archivos `image` y `sound` se suben al media host y tienen prioridad sobre los campos de texto `image`/`sound` (URLs literales). Solo se usa el primer archivo por slot.
// @Tags animals
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param name formData string true "Nombre (único)"
// @Param category formData string false "wild | farm | birds | insects (default wild)"
// @Param habitat formData string false "Hábitat"
// @Param facts formData string false "Datos curiosos"
// @Param description formData string false "Descripción; por defecto igual a facts"
// @Param image formData file false "Imagen a subir (o URL literal como texto)"
// @Param sound formData file false "Audio a subir (o URL literal como texto)"
// @Success 201 {object} animalResponse
// @Failure 400 {object} errorResponse "validación / nombre duplicado"
// @Failure 413 {object} errorResponse "body demasiado grande"
// @Failure 500 {object} errorResponse
// @Failure 502 {object} errorResponse "fallo subiendo media"
// @Router /animals [post]
func createAnimalHandler(svc *Service, opts HandlerOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context(), opts.Logger)

		if opts.MaxUploadBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, opts.MaxUploadBytes)
		}

		in, cleanup, err := decodeCreateInput(r)
		if cleanup != nil {
			defer cleanup()
		}
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Message: "request body too large"})
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body", Detail: err.Error()})
			return
		}

		a, err := svc.Create(r.Context(), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrDuplicate):
				writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
			case errors.Is(err, ErrUpload):
				log.Error("media upload failed", map[string]any{"name": in.Name, "err": err})
				writeJSON(w, http.StatusBadGateway, errorResponse{Message: "media upload failed", Detail: err.Error()})
			default:
				log.Error("create animal failed", map[string]any{"name": in.Name, "err": err})
				writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// decodeCreateInput acepta multipart, urlencoded o JSON.
// cleanup libera los temporales del multipart.
func decodeCreateInput(r *http.Request) (CreateInput, func(), error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch ct {
	case "application/json":
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return CreateInput{}, nil, err
		}
		return CreateInput{
			Name:        req.Name,
			Category:    req.Category,
			Habitat:     req.Habitat,
			Facts:       req.Facts,
			Description: req.Description,
			ImageURL:    req.Image,
			SoundURL:    req.Sound,
		}, nil, nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return CreateInput{}, nil, err
		}
		form := r.MultipartForm
		cleanup := func() { _ = form.RemoveAll() }

		in := formInput(r)
		var opened []multipart.File
		closeAll := func() {
			for _, f := range opened {
				_ = f.Close()
			}
			cleanup()
		}

		for field, dst := range map[string]**Attachment{"image": &in.Image, "sound": &in.Sound} {
			headers := form.File[field]
			if len(headers) == 0 {
				continue
			}
			// Solo el primero; el resto se ignora.
			fh := headers[0]
			f, err := fh.Open()
			if err != nil {
				return CreateInput{}, closeAll, err
			}
			opened = append(opened, f)
			*dst = &Attachment{Filename: fh.Filename, Body: f}
		}
		return in, closeAll, nil

	default:
		if err := r.ParseForm(); err != nil {
			return CreateInput{}, nil, err
		}
		return formInput(r), nil, nil
	}
}

func formInput(r *http.Request) CreateInput {
	return CreateInput{
		Name:        r.FormValue("name"),
		Category:    r.FormValue("category"),
		Habitat:     r.FormValue("habitat"),
		Facts:       r.FormValue("facts"),
		Description: r.FormValue("description"),
		ImageURL:    r.FormValue("image"),
		SoundURL:    r.FormValue("sound"),
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:          a.ID,
		Key:         a.Key,
		Name:        a.Name,
		Category:    a.Category,
		Habitat:     a.Habitat,
		Facts:       a.Facts,
		Description: a.Description,
		Image:       mediaResponse{URL: a.Image.URL, AssetID: a.Image.AssetID},
		Audio:       mediaResponse{URL: a.Audio.URL, AssetID: a.Audio.AssetID},
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
