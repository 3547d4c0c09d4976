package useradmin

import (
	"github.com/gofiber/fiber/v2"
)

// Values is an untyped bag of request parameters, copied verbatim
type Values map[string]string

// Get returns the value for key, empty string when absent
func (v Values) Get(key string) string {
	if v == nil {
		return ""
	}
	return v[key]
}

// Has reports whether key carries a non-empty value
func (v Values) Has(key string) bool {
	return v.Get(key) != ""
}

// Input holds the raw request parameters of a single request. Nothing here
// is validated; handlers only consume input through a Whitelist.
type Input struct {
	Post Values
	Get  Values
}

// CollectInput copies all request parameters into untyped bags
func CollectInput(c *fiber.Ctx) *Input {
	in := &Input{
		Post: Values{},
		Get:  Values{},
	}

	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		in.Post[string(key)] = string(value)
	})
	c.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		in.Get[string(key)] = string(value)
	})

	return in
}

// Action resolves the requested action name, preferring POST over GET
func (in *Input) Action() string {
	if in == nil {
		return ""
	}
	if action := in.Post.Get("action"); action != "" {
		return action
	}
	return in.Get.Get("action")
}

// Whitelist is the minimal, explicitly sanitized subset of request input a
// handler is willing to trust. Fields are populated one by one through
// sanitizer calls, never by bulk copy; password fields stay untouched so
// verification sees exactly what the user typed.
type Whitelist struct {
	Username string
	Password string
	Email    string
	Confirm  string
	User     string
	Key      string
}

// LoginWhitelist builds the whitelist for the login action
func LoginWhitelist(in *Input, s Sanitizer) Whitelist {
	return Whitelist{
		Username: s.Text(in.Post.Get("username"), 100),
		Password: in.Post.Get("password"),
	}
}

// RegistrationWhitelist builds the whitelist for the registration action
func RegistrationWhitelist(in *Input, s Sanitizer) Whitelist {
	return Whitelist{
		Username: s.PageName(in.Post.Get("username"), 100),
		Email:    s.Email(in.Post.Get("email")),
		Password: in.Post.Get("password"),
		Confirm:  in.Post.Get("confirm"),
	}
}

// ConfirmationWhitelist builds the whitelist for the confirmation action.
// Values arrive via GET and are url-decoded by the transport before use.
func ConfirmationWhitelist(in *Input, s Sanitizer) Whitelist {
	return Whitelist{
		Key:  in.Get.Get("key"),
		User: s.PageName(in.Get.Get("user"), 100),
	}
}
