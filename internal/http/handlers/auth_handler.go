package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	"storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// userView is what the API shows of a user record. The password, hashed or
// not, never leaves the server.
type userView struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LoggedIn bool   `json:"logged_in"`
}

func viewOf(u domain.UserRecord) userView {
	return userView{Name: u.Name, Email: u.Email, Phone: u.Phone, LoggedIn: services.IsLoggedIn(u)}
}

// profileFrom validates a register/profile form. A blank password is
// allowed only when requirePassword is false.
func profileFrom(f map[string]string, requirePassword bool) (p services.Profile, field string) {
	var ok bool
	if p.Name, ok = validate.Name(f["name"]); !ok {
		return p, "name"
	}
	if p.Email, ok = validate.Email(f["email"]); !ok {
		return p, "email"
	}
	if f["phone"] != "" {
		if p.Phone, ok = validate.Phone(f["phone"]); !ok {
			return p, "phone"
		}
	}
	p.Password = f["password"]
	if (requirePassword || p.Password != "") && !validate.Password(p.Password) {
		return p, "password"
	}
	return p, ""
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	f, err := formValues(c)
	if err != nil {
		return badRequest(c, "malformed body")
	}
	p, field := profileFrom(f, true)
	if field != "" {
		log.Security(c, "validation.fail", map[string]any{"field": field})
		return badRequest(c, "invalid "+field)
	}
	u, err := h.Auth.Register(c.UserContext(), sessionID(c), p)
	if errors.Is(err, services.ErrEmailRegistered) {
		log.Security(c, "auth.register.fail", map[string]any{"email": p.Email, "reason": "duplicate"})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This email is already registered"})
	}
	if err != nil {
		return err
	}
	log.Audit(c, "auth.register", map[string]any{"email": u.Email})
	return c.Status(fiber.StatusCreated).JSON(viewOf(u))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	f, err := formValues(c)
	if err != nil {
		return badRequest(c, "malformed body")
	}
	email, pass := f["email"], f["password"]
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	u, err := h.Auth.Login(c.UserContext(), sessionID(c), services.Profile{
		Name: f["name"], Email: email, Phone: f["phone"], Password: pass,
	})
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if err != nil {
		return err
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(viewOf(u))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.Auth.Logout(c.UserContext(), sessionID(c)); err != nil {
		return err
	}
	log.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

// Me expects RequireLogin to have stored the user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(domain.UserRecord)
	return c.JSON(viewOf(u))
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	f, err := formValues(c)
	if err != nil {
		return badRequest(c, "malformed body")
	}
	p, field := profileFrom(f, false)
	if field != "" {
		log.Security(c, "validation.fail", map[string]any{"field": field})
		return badRequest(c, "invalid "+field)
	}
	u, err := h.Auth.UpdateProfile(c.UserContext(), sessionID(c), p)
	if errors.Is(err, services.ErrNotLoggedIn) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	if err != nil {
		return err
	}
	log.Audit(c, "account.update", map[string]any{"email": u.Email})
	return c.JSON(viewOf(u))
}
