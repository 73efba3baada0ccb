package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/swiftbasket/swiftbasket-backend/api/responses"
	"github.com/swiftbasket/swiftbasket-backend/api/validators"
	"github.com/swiftbasket/swiftbasket-backend/internal/media"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"github.com/swiftbasket/swiftbasket-backend/pkg/logger"
)

// MediaImage serves a generated product image from the local cache,
// fetching it from the generator on first request. When generation
// fails and the caller supplied ?fallback=, the request is redirected
// there instead of erroring.
func MediaImage(svc *media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		prompt, err := validators.RequireQuery(r, "prompt")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := r.URL.Query()
		req := media.Request{
			Kind:   chi.URLParam(r, "kind"),
			ID:     chi.URLParam(r, "id"),
			Prompt: prompt,
		}
		if v, err := strconv.Atoi(query.Get("sub")); err == nil && v > 0 {
			req.SubID = v
		}
		if v, err := strconv.Atoi(query.Get("w")); err == nil && v > 0 {
			req.Width = v
		}
		if v, err := strconv.Atoi(query.Get("h")); err == nil && v > 0 {
			req.Height = v
		}

		path, err := svc.Ensure(r.Context(), req)
		if err != nil {
			if fallback := query.Get("fallback"); fallback != "" {
				if coded := pkgerrors.As(err); coded != nil && coded.Code() == pkgerrors.CodeDependency {
					http.Redirect(w, r, fallback, http.StatusTemporaryRedirect)
					return
				}
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeFile(w, r, path)
	}
}
