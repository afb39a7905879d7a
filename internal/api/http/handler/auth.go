package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/codepad-server/internal/api/http/view"
	"github.com/dtroode/codepad-server/internal/logger"
	"github.com/dtroode/codepad-server/internal/model"
)

// OTPService issues registration verification codes.
type OTPService interface {
	Issue(ctx context.Context, sessionID, email string) error
}

// AuthService registers accounts and authenticates credentials.
type AuthService interface {
	Register(ctx context.Context, sessionID string, params model.RegisterParams) (model.Identity, error)
	Authenticate(ctx context.Context, credential model.Credential) (model.Identity, error)
	FederatedLoginURL(state string) (string, error)
}

// Auth handles registration, login and logout.
type Auth struct {
	base
	authService      AuthService
	otpService       OTPService
	jar              SessionJar
	federatedEnabled bool
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	otpService OTPService,
	contextManager model.ContextManager,
	jar SessionJar,
	renderer Renderer,
	logger *logger.Logger,
	federatedEnabled bool,
) *Auth {
	return &Auth{
		base: base{
			contextManager: contextManager,
			renderer:       renderer,
			logger:         logger,
		},
		authService:      authService,
		otpService:       otpService,
		jar:              jar,
		federatedEnabled: federatedEnabled,
	}
}

type sendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	OTP      string `json:"otp" validate:"required,len=6,numeric"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SendOTP issues a verification code for the email in the body.
func (h *Auth) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, "", view.Data{})
		return
	}

	session, ok := h.session(r)
	if !ok {
		h.fail(w, r, errMissingSession, "", view.Data{})
		return
	}

	if err := h.otpService.Issue(r.Context(), session.ID, req.Email); err != nil {
		h.fail(w, r, err, "", view.Data{})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Verification code sent to " + req.Email})
}

// RegisterPage renders the registration form.
func (h *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if h.identity(r) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, view.PageRegister, view.Data{FederatedEnabled: h.federatedEnabled})
}

// Register creates the account after the OTP check and signs the user in.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, view.PageRegister, h.registerData(req))
		return
	}

	session, ok := h.session(r)
	if !ok {
		h.fail(w, r, errMissingSession, view.PageRegister, h.registerData(req))
		return
	}

	identity, err := h.authService.Register(r.Context(), session.ID, model.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		OTP:      req.OTP,
	})
	if err != nil {
		h.fail(w, r, err, view.PageRegister, h.registerData(req))
		return
	}

	h.signIn(w, r, identity)
}

// LoginPage renders the login form.
func (h *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.identity(r) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, view.PageLogin, view.Data{FederatedEnabled: h.federatedEnabled})
}

// Login authenticates the email and password in the body.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, err, view.PageLogin, view.Data{Email: req.Email, FederatedEnabled: h.federatedEnabled})
		return
	}

	identity, err := h.authService.Authenticate(r.Context(), model.PasswordCredential{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.fail(w, r, err, view.PageLogin, view.Data{Email: req.Email, FederatedEnabled: h.federatedEnabled})
		return
	}

	h.signIn(w, r, identity)
}

// GoogleLogin redirects to the identity provider.
func (h *Auth) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := h.jar.NewState()
	if err != nil {
		h.fail(w, r, err, view.PageLogin, view.Data{})
		return
	}

	url, err := h.authService.FederatedLoginURL(state)
	if err != nil {
		h.fail(w, r, err, view.PageLogin, view.Data{})
		return
	}
	h.jar.SetState(w, state)

	http.Redirect(w, r, url, http.StatusFound)
}

// Callback completes the federated flow started by GoogleLogin.
func (h *Auth) Callback(w http.ResponseWriter, r *http.Request) {
	data := view.Data{FederatedEnabled: h.federatedEnabled}

	state := h.jar.TakeState(w, r)
	if state == "" || r.URL.Query().Get("state") != state {
		h.fail(w, r, model.ErrInvalidState, view.PageLogin, data)
		return
	}
	if reason := r.URL.Query().Get("error"); reason != "" {
		h.fail(w, r, newBadRequest("sign-in was cancelled: %s", reason), view.PageLogin, data)
		return
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		h.fail(w, r, newBadRequest("authorization code is missing"), view.PageLogin, data)
		return
	}

	identity, err := h.authService.Authenticate(r.Context(), model.FederatedCredential{Code: code})
	if err != nil {
		h.fail(w, r, err, view.PageLogin, data)
		return
	}

	h.signIn(w, r, identity)
}

// Logout replaces the session with a fresh anonymous one.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.jar.Write(w, model.NewAnonymousSession()); err != nil {
		h.fail(w, r, err, "", view.Data{})
		return
	}

	http.Redirect(w, r, "/login", http.StatusFound)
}

// signIn rotates the session id and binds it to the identity.
func (h *Auth) signIn(w http.ResponseWriter, r *http.Request, identity model.Identity) {
	session := model.Session{ID: uuid.NewString(), UserID: identity.UserID}
	if err := h.jar.Write(w, session); err != nil {
		h.fail(w, r, err, "", view.Data{})
		return
	}

	h.logger.Info("Auth handler: user signed in",
		"user_id", identity.UserID)

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, messageResponse{Message: "Signed in as " + identity.Email})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Auth) registerData(req registerRequest) view.Data {
	return view.Data{Name: req.Name, Email: req.Email, FederatedEnabled: h.federatedEnabled}
}
