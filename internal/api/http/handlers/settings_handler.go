package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/api/dto"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/view"
	apperrors "github.com/spec-kit/helpdesk-console/pkg/util/errorutil"
)

// SettingsHandler serves the settings forms backed by the per-user
// preference store.
type SettingsHandler struct {
	sessions *session.Manager
	renderer *view.Renderer
	logger   *zap.Logger
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(sessions *session.Manager, renderer *view.Renderer, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{sessions: sessions, renderer: renderer, logger: logger}
}

// Settings GET /settings.
func (h *SettingsHandler) Settings(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return h.renderer.Render(c, "settings", view.SettingsPage{
		Page:  chrome("Settings", sess, h.sessions.PopFlashes(c.Context(), sess.ID)),
		Email: sess.User.Email,
		Prefs: h.sessions.Preferences(c.Context(), sess.User.Email),
	})
}

// SaveProfile POST /settings/profile.
func (h *SettingsHandler) SaveProfile(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	var form dto.ProfileForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid profile payload", nil)
	}
	return h.save(c, sess, domain.Preferences{
		"fullName": form.FullName,
		"phone":    form.Phone,
	}, "Profile saved")
}

// SaveSecurity POST /settings/security.
func (h *SettingsHandler) SaveSecurity(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	var form dto.SecurityForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid security payload", nil)
	}
	return h.save(c, sess, domain.Preferences{
		"twoFactor": dto.Checkbox(form.TwoFactor),
	}, "Security settings saved")
}

// SaveNotifications POST /settings/notifications. Unchecked boxes post no
// value, so every toggle is normalized explicitly.
func (h *SettingsHandler) SaveNotifications(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	var form dto.NotificationsForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid notifications payload", nil)
	}
	return h.save(c, sess, domain.Preferences{
		"emailNotif":      dto.Checkbox(form.EmailNotif),
		"smsNotif":        dto.Checkbox(form.SMSNotif),
		"browserNotif":    dto.Checkbox(form.BrowserNotif),
		"statusNotif":     dto.Checkbox(form.StatusNotif),
		"assignmentNotif": dto.Checkbox(form.AssignmentNotif),
		"weeklyNotif":     dto.Checkbox(form.WeeklyNotif),
	}, "Notification settings saved")
}

// SavePreferences POST /settings/preferences.
func (h *SettingsHandler) SavePreferences(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	var form dto.RegionalForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid preferences payload", nil)
	}
	return h.save(c, sess, domain.Preferences{
		"theme":      form.Theme,
		"language":   form.Language,
		"timezone":   form.Timezone,
		"dateFormat": form.DateFormat,
	}, "Preferences saved")
}

// Clear POST /settings/clear wipes every stored preference, reverting the
// forms to their defaults.
func (h *SettingsHandler) Clear(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	if err := h.sessions.ClearPreferences(c.Context(), sess.User.Email); err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := h.sessions.PushFlash(c.Context(), sess.ID, "Stored settings cleared"); err != nil {
		h.logger.Warn("flash push failed", zap.Error(err))
	}
	return c.Redirect("/settings", fiber.StatusFound)
}

// ExportJSON GET /settings/export.json downloads the user's stored
// preference bag alongside the account identity.
func (h *SettingsHandler) ExportJSON(c *fiber.Ctx) error {
	sess, ok := session.FromContext(c)
	if !ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	payload := fiber.Map{
		"email":       sess.User.Email,
		"name":        sess.User.Name,
		"exported_at": time.Now().Format(time.RFC3339),
		"preferences": h.sessions.Preferences(c.Context(), sess.User.Email),
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`,
		fmt.Sprintf("helpdesk_settings_%s.json", time.Now().Format("2006-01-02"))))
	return c.JSON(payload)
}

func (h *SettingsHandler) save(c *fiber.Ctx, sess *domain.Session, prefs domain.Preferences, confirmation string) error {
	if err := h.sessions.SavePreferences(c.Context(), sess.User.Email, prefs); err != nil {
		return err
	}
	if err := h.sessions.PushFlash(c.Context(), sess.ID, confirmation); err != nil {
		h.logger.Warn("flash push failed", zap.Error(err))
	}
	return c.Redirect("/settings", fiber.StatusFound)
}
