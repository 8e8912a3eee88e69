package artwork

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/saifaleee/MetroArt/internal/auth"
	"github.com/saifaleee/MetroArt/internal/authz"
	"github.com/saifaleee/MetroArt/internal/response"
	"github.com/saifaleee/MetroArt/internal/storage"
	"github.com/saifaleee/MetroArt/internal/upload"
	"github.com/saifaleee/MetroArt/internal/user"
)

// FileField is the multipart field name carrying the image.
const FileField = "artImage"

// Handler holds HTTP handlers for artwork endpoints.
type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler creates a new artwork Handler enforcing the given upload size cap.
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

// Create godoc
//
//	@Summary		Upload artwork
//	@Description	Accepts a multipart body with title, description, and an image file (JPEG/PNG/GIF, max 5 MiB). Returns the record with a resolved image URL and the content fingerprint.
//	@Tags			art
//	@Accept			multipart/form-data
//	@Produce		json
//	@Security		BearerAuth
//	@Param			title		formData	string	true	"Title"
//	@Param			description	formData	string	false	"Description"
//	@Param			artImage	formData	file	true	"Image file"
//	@Success		201	{object}	response.Envelope{data=Artwork}
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		413	{object}	response.Envelope
//	@Failure		415	{object}	response.Envelope
//	@Failure		502	{object}	response.Envelope
//	@Router			/art [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+formOverhead)
	asset, err := upload.Intake(r, FileField, true, h.maxBytes)
	if err != nil {
		h.writeError(w, err)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		response.BadRequest(w, "title is required")
		return
	}
	description := r.FormValue("description")

	a, err := h.svc.Create(r.Context(), userID, asset, title, description)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, a)
}

// formOverhead is the slack allowed on top of the file size cap for the
// multipart framing and text fields.
const formOverhead = 64 * 1024

// List godoc
//
//	@Summary		List published artworks
//	@Tags			art
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=[]Artwork}
//	@Failure		500	{object}	response.Envelope
//	@Router			/art [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListPublished(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, list)
}

// MyArt godoc
//
//	@Summary		List own artworks
//	@Description	Returns every artwork owned by the authenticated user, including unpublished ones.
//	@Tags			art
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.Envelope{data=[]Artwork}
//	@Failure		401	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/art/my-art [get]
func (h *Handler) MyArt(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	list, err := h.svc.ListByOwner(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, list)
}

// Get godoc
//
//	@Summary		Get artwork by ID
//	@Tags			art
//	@Produce		json
//	@Param			id	path		string	true	"Artwork ID"
//	@Success		200	{object}	response.Envelope{data=Artwork}
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/art/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, a)
}

// ServeImage godoc
//
//	@Summary		Stream an artwork image
//	@Description	Streams the stored object bytes directly, for clients that cannot follow presigned URLs.
//	@Tags			art
//	@Produce		image/jpeg
//	@Param			key	path		string	true	"Storage key"
//	@Success		200	{file}		binary
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/art/image/{key} [get]
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		response.NotFound(w, "image not found")
		return
	}

	obj, err := h.svc.OpenImage(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			response.NotFound(w, "image not found")
			return
		}
		h.writeError(w, err)
		return
	}
	defer obj.Close()

	if _, err := io.Copy(w, obj); err != nil {
		log.Printf("artwork: stream %q aborted: %v", key, err)
	}
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublished *bool   `json:"isPublished"`
}

// Update godoc
//
//	@Summary		Update artwork metadata
//	@Description	Owner-only. Changes title, description, or publication state. The stored image and its fingerprint never change; a file part, if sent, is ignored.
//	@Tags			art
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Artwork ID"
//	@Param			request	body		updateRequest	true	"Fields to change"
//	@Success		200	{object}	response.Envelope{data=Artwork}
//	@Failure		400	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		403	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Router			/art/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	req, err := h.parseUpdate(r)
	if err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	a, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "id"), UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, a)
}

// parseUpdate accepts both JSON bodies and multipart forms; the web client
// submits edits as FormData.
func (h *Handler) parseUpdate(r *http.Request) (*updateRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(formOverhead); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		req := &updateRequest{}
		if v, ok := formValue(r, "title"); ok {
			req.Title = &v
		}
		if v, ok := formValue(r, "description"); ok {
			req.Description = &v
		}
		if v, ok := formValue(r, "isPublished"); ok {
			published := v == "true"
			req.IsPublished = &published
		}
		return req, nil
	}

	req := &updateRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// Delete godoc
//
//	@Summary		Delete artwork
//	@Description	Owner-only. Removes the record, then the stored object.
//	@Tags			art
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Artwork ID"
//	@Success		200	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		403	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Router			/art/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	if err := h.svc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	response.OK(w, map[string]bool{"deleted": true})
}

// writeError maps pipeline errors to the HTTP taxonomy.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, upload.ErrMissingFile):
		response.BadRequest(w, upload.ErrMissingFile.Error())
	case errors.Is(err, upload.ErrInvalidMediaType):
		response.UnsupportedMediaType(w, upload.ErrInvalidMediaType.Error())
	case errors.Is(err, upload.ErrPayloadTooLarge):
		response.PayloadTooLarge(w, upload.ErrPayloadTooLarge.Error())
	case errors.Is(err, authz.ErrForbidden):
		response.Forbidden(w, "you do not own this artwork")
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "artwork not found")
	case errors.Is(err, user.ErrNotFound):
		// Token subject no longer exists; treat as unauthenticated.
		response.Unauthorized(w, "account no longer exists")
	case errors.Is(err, storage.ErrStoreUnavailable):
		response.BadGateway(w, "object store unavailable")
	default:
		log.Printf("artwork: %v", err)
		response.InternalError(w)
	}
}
