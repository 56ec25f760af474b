package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/marmos91/retrogg/internal/captcha"
	"github.com/marmos91/retrogg/internal/logger"
	"github.com/marmos91/retrogg/pkg/models"
)

// Reply strings the registration endpoints send. Clients match on them
// verbatim, including the prefix before the colon.
const (
	replyRegistered    = "reg_success:%d"
	replyRegFailed     = "reg_failed"
	replyPwdSendFailed = "pwdsend_failed"
)

// registerHandler implements the account registration flow: mint a
// captcha token, serve its image URL, accept the signup form.
type registerHandler struct {
	store    Store
	tokenURL string
	validate *validator.Validate
}

func newRegisterHandler(cfg Config, store Store) *registerHandler {
	return &registerHandler{
		store:    store,
		tokenURL: fmt.Sprintf("http://%s/appsvc/tokenpic.asp", cfg.Hostname),
		validate: validator.New(),
	}
}

// Token handles /appsvc/regtoken.asp. It mints a single use captcha
// token and tells the client where to fetch the image.
//
// The reply is three CRLF separated lines: image geometry plus code
// length, the token identifier, and the image URL.
func (h *registerHandler) Token(w http.ResponseWriter, r *http.Request) {
	token, err := h.store.CreateToken(r.Context())
	if err != nil {
		logger.Error("Token creation failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "%d %d %d\r\n%s\r\n%s",
		captcha.Width, captcha.Height, captcha.CodeLength,
		token.TokenID, h.tokenURL)
}

// Register handles POST /appsvc/fmregister3.asp.
//
// The form carries pwd, email, tokenid, and tokenval for a new
// account. Requests with an fmnumber field are account updates or
// deletions, which this server does not offer; they are refused with
// the same reg_failed reply the client already knows how to present.
//
// The captcha token is consumed before the account is created, so a
// failed signup burns it and the client has to fetch a fresh one.
func (h *registerHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fmt.Fprint(w, replyRegFailed)
		return
	}

	if r.PostFormValue("fmnumber") != "" {
		fmt.Fprint(w, replyRegFailed)
		return
	}

	pwd := r.PostFormValue("pwd")
	email := r.PostFormValue("email")
	tokenID := r.PostFormValue("tokenid")
	tokenVal := r.PostFormValue("tokenval")
	if pwd == "" || tokenID == "" || tokenVal == "" {
		fmt.Fprint(w, replyRegFailed)
		return
	}
	if err := h.validate.Var(email, "required,email"); err != nil {
		logger.Info("Registration refused", "email", email, "reason", "invalid email")
		fmt.Fprint(w, replyRegFailed)
		return
	}

	if err := h.store.ValidateToken(r.Context(), tokenID, tokenVal); err != nil {
		logger.Info("Registration refused", "email", email, "reason", err.Error())
		fmt.Fprint(w, replyRegFailed)
		return
	}

	user := &models.User{
		Name:     displayName(email),
		Email:    email,
		Password: pwd,
	}
	uin, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) || errors.Is(err, models.ErrNoFreeUIN) {
			logger.Info("Registration refused", "email", email, "reason", err.Error())
			fmt.Fprint(w, replyRegFailed)
			return
		}
		logger.Error("Registration failed", "email", email, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Info("Account registered", "uin", uin, "email", email)
	fmt.Fprintf(w, replyRegistered, uin)
}

// SendPassword handles POST /appsvc/fmsendpwd3.asp. The server keeps
// no outbound mail path, so every reminder request is refused.
func (h *registerHandler) SendPassword(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, replyPwdSendFailed)
}

// displayName derives the initial account name from the email local
// part.
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "user"
	}
	return local
}
