package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeBody reads a JSON body into dst and validates its tags.
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrInvalidRequest, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return nil
}

// callerID reads the acting user from the X-Sharer-User-Id header.
func callerID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(models.HeaderUserID))
	if raw == "" {
		return 0, fmt.Errorf("%w: header %s is required", domain.ErrInvalidRequest, models.HeaderUserID)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: header %s must be a positive integer", domain.ErrInvalidRequest, models.HeaderUserID)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidRequest, name)
	}
	return id, nil
}

// pageFrom parses from/size, defaulting to 0 and DefaultPageSize. Bounds are
// checked by the services.
func pageFrom(r *http.Request) (models.Page, error) {
	page := models.Page{From: 0, Size: models.DefaultPageSize}
	q := r.URL.Query()

	if raw := q.Get("from"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("%w: from must be an integer", domain.ErrInvalidRequest)
		}
		page.From = v
	}
	if raw := q.Get("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("%w: size must be an integer", domain.ErrInvalidRequest)
		}
		page.Size = v
	}
	return page, nil
}
