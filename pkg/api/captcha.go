package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/marmos91/retrogg/internal/captcha"
	"github.com/marmos91/retrogg/internal/logger"
	"github.com/marmos91/retrogg/pkg/models"
)

// captchaHandler serves the token images referenced by regtoken.asp
// replies.
type captchaHandler struct {
	store Store
}

func newCaptchaHandler(store Store) *captchaHandler {
	return &captchaHandler{store: store}
}

// Image handles GET /appsvc/tokenpic.asp?tokenid=<id>.
//
// Unknown, already used, and expired tokens all answer 404. The image
// is rendered on demand; tokens are short lived and single use, so
// there is nothing worth caching.
func (h *captchaHandler) Image(w http.ResponseWriter, r *http.Request) {
	tokenID := r.URL.Query().Get("tokenid")
	if tokenID == "" {
		http.Error(w, "missing tokenid", http.StatusBadRequest)
		return
	}

	token, err := h.store.GetToken(r.Context(), tokenID)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			http.NotFound(w, r)
			return
		}
		logger.Error("Token lookup failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	img, err := captcha.Render(token.CaptchaCode)
	if err != nil {
		logger.Error("Captcha render failed", "token_id", token.TokenID, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	_, _ = w.Write(img)
}
