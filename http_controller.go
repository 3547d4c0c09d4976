package useradmin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Actions the dispatcher is willing to run. Anything else is silently
// ignored, so attacker-controlled action names cannot reach internals.
const (
	ActionLogin        = "login"
	ActionRegistration = "registration"
	ActionConfirmation = "confirmation"
	ActionLogout       = "logout"
)

// ControllerViews maps sections to view names
type ControllerViews struct {
	Login        string
	Registration string
	User         string
	Blank        string
}

// Controller glues the workflow engine to the HTTP surface: it collects
// input, dispatches the requested action against the allow-list and applies
// the resulting Outcome (render or redirect) on the fiber context.
type Controller struct {
	Logger    Logger
	Processor *Processor
	Sessions  *session.Store
	Sanitizer Sanitizer
	Views     *ControllerViews

	actions map[string]actionFunc
}

type actionFunc func(c *fiber.Ctx, in *Input, principal *Principal, sess *FiberSession) Outcome

// ControllerOption mutates the controller during construction
type ControllerOption func(*Controller) *Controller

// NewController creates the HTTP controller
func NewController(p *Processor, sessions *session.Store, opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger:    defLogger{},
		Processor: p,
		Sessions:  sessions,
		Sanitizer: NewSanitizer(),
		Views: &ControllerViews{
			Login:        "login",
			Registration: "registration",
			User:         "user",
			Blank:        "blank",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Processor == nil {
		panic("Missing Processor in useradmin controller...")
	}

	if c.Sessions == nil {
		panic("Missing session store in useradmin controller...")
	}

	c.actions = map[string]actionFunc{
		ActionLogin:        c.actionLogin,
		ActionRegistration: c.actionRegistration,
		ActionConfirmation: c.actionConfirmation,
		ActionLogout:       c.actionLogout,
	}

	return c
}

// WithLogger overrides the controller logger
func WithLogger(l Logger) ControllerOption {
	return func(c *Controller) *Controller {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

// RegisterRoutes mounts the section handler. Every section page answers on
// its own slug; actions arrive as form or query parameters on the same
// routes.
func RegisterRoutes(app *fiber.App, c *Controller) {
	app.Get("/", c.Home)
	app.Get("/:section", c.Handle)
	app.Post("/:section", c.Handle)
}

// Home sends visitors to the login page
func (c *Controller) Home(ctx *fiber.Ctx) error {
	println("DBG home path=" + ctx.Path() + " uri=" + string(ctx.Request().URI().FullURI()))
	return ctx.Redirect(c.Processor.cfg.GetLoginRoute(), fiber.StatusSeeOther)
}

// Handle serves a single section request: resolve the section for the page
// slug, run at most one permitted action, then render or redirect.
func (c *Controller) Handle(ctx *fiber.Ctx) error {
	sess, err := c.Sessions.Get(ctx)
	if err != nil {
		c.Logger.Error("session unavailable: %v", err)
		return ctx.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	fs := NewFiberSession(sess)
	principal := fs.Principal()
	in := CollectInput(ctx)

	outcome := c.Processor.PrepareSection(ctx.Params("section"), Whitelist{}, principal, fs)

	println("DBG section=" + ctx.Params("section") + " action=" + in.Action() + " path=" + ctx.Path() + " redirect0=" + outcome.Redirect)

	if action, ok := c.actions[in.Action()]; ok {
		outcome = outcome.Merge(action(ctx, in, principal, fs))
	}

	if outcome.IsRedirect() {
		if err := fs.Save(); err != nil {
			c.Logger.Error("saving session before redirect: %v", err)
		}
		return ctx.Redirect(outcome.Redirect, fiber.StatusSeeOther)
	}

	messages := append(fs.DrainFlash(), outcome.Messages...)
	if err := fs.Save(); err != nil {
		c.Logger.Error("saving session: %v", err)
	}

	return c.render(ctx, outcome, messages)
}

func (c *Controller) actionLogin(ctx *fiber.Ctx, in *Input, principal *Principal, sess *FiberSession) Outcome {
	wl := LoginWhitelist(in, c.Sanitizer)
	return c.Processor.Login(ctx.Context(), wl, principal, sess)
}

func (c *Controller) actionRegistration(ctx *fiber.Ctx, in *Input, principal *Principal, _ *FiberSession) Outcome {
	wl := RegistrationWhitelist(in, c.Sanitizer)
	return c.Processor.Registration(ctx.Context(), wl, principal)
}

func (c *Controller) actionConfirmation(ctx *fiber.Ctx, in *Input, _ *Principal, sess *FiberSession) Outcome {
	wl := ConfirmationWhitelist(in, c.Sanitizer)
	return c.Processor.Confirmation(ctx.Context(), wl, sess)
}

func (c *Controller) actionLogout(_ *fiber.Ctx, _ *Input, principal *Principal, sess *FiberSession) Outcome {
	return c.Processor.Logout(principal, sess)
}

func (c *Controller) render(ctx *fiber.Ctx, outcome Outcome, messages []Message) error {
	bind := fiber.Map{"messages": messages}
	for key, value := range outcome.Data {
		bind[key] = value
	}

	return ctx.Render(c.viewName(outcome.Section), bind)
}

// viewName matches a section to its template. Unknown sections render the
// blank view: messages only, no content, not an error.
func (c *Controller) viewName(section Section) string {
	switch section {
	case SectionLogin:
		return c.Views.Login
	case SectionRegistration:
		return c.Views.Registration
	case SectionUser:
		return c.Views.User
	default:
		return c.Views.Blank
	}
}
