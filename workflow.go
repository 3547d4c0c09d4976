package useradmin

import (
	"context"
	"fmt"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// opTimeout bounds the external store and mailer work of a single operation
// so a hung collaborator cannot block the request indefinitely.
const opTimeout = 10 * time.Second

// ViewData is the prepared data map a section template consumes
type ViewData map[string]any

// Outcome is the result of a single request's trip through the workflow
// engine: either a section to render with accumulated messages, or a
// terminal redirect. An outcome with neither section nor redirect leaves the
// previously resolved section in place and only contributes its messages.
type Outcome struct {
	Section  Section
	Data     ViewData
	Messages []Message
	Redirect string
}

// IsRedirect reports whether the outcome terminates in a redirect
func (o Outcome) IsRedirect() bool {
	return o.Redirect != ""
}

// Merge overlays act on top of a previously resolved outcome: messages
// accumulate, a section or redirect in act replaces the earlier resolution.
func (o Outcome) Merge(act Outcome) Outcome {
	out := o

	if act.IsRedirect() {
		return act
	}

	if act.Section != SectionNone {
		out.Section = act.Section
		out.Data = act.Data
	}

	out.Messages = append(out.Messages, act.Messages...)
	return out
}

// Processor is the account workflow engine. It validates whitelisted input,
// drives the account lifecycle and selects the view outcome. Collaborators
// are injected; the processor holds no per-request state.
type Processor struct {
	repo      RepositoryManager
	mailer    Mailer
	cfg       Config
	sanitizer Sanitizer
	logger    Logger
}

// NewProcessor creates a workflow engine
func NewProcessor(repo RepositoryManager, mailer Mailer, cfg Config) *Processor {
	return &Processor{
		repo:      repo,
		mailer:    mailer,
		cfg:       cfg,
		sanitizer: NewSanitizer(),
		logger:    defLogger{},
	}
}

// WithLogger overrides the processor logger
func (p *Processor) WithLogger(l Logger) *Processor {
	if l != nil {
		p.logger = l
	}
	return p
}

// PrepareSection resolves a page slug into a section outcome. Unknown names
// yield SectionNone with no data, which the renderer treats as "nothing to
// show". Visiting the logout section runs the logout action directly.
func (p *Processor) PrepareSection(name string, wl Whitelist, principal *Principal, sess SessionWriter) Outcome {
	section := ParseSection(p.sanitizer.PageName(name, 50))

	switch section {
	case SectionLogin:
		return p.sectionLogin(wl, principal)
	case SectionRegistration:
		return p.sectionRegistration(wl, principal)
	case SectionUser:
		return p.sectionUser(principal)
	case SectionLogout:
		return p.Logout(principal, sess)
	default:
		return Outcome{Section: SectionNone}
	}
}

// Already-authenticated visitors have no business on the login or
// registration forms; both sections bounce them to the private area.
func (p *Processor) sectionLogin(wl Whitelist, principal *Principal) Outcome {
	if principal.Authenticated() {
		return Outcome{Redirect: p.cfg.GetPrivateAreaRoute()}
	}

	return Outcome{
		Section: SectionLogin,
		Data: ViewData{
			"legend":               "Login",
			"value_username":       wl.Username,
			"register_text":        "You are not registered yet,",
			"register_link":        "create your account",
			"submit_text":          "Login",
			"placeholder_username": "Username or email",
			"placeholder_password": "Password",
		},
	}
}

func (p *Processor) sectionRegistration(wl Whitelist, principal *Principal) Outcome {
	if principal.Authenticated() {
		return Outcome{Redirect: p.cfg.GetPrivateAreaRoute()}
	}

	return Outcome{
		Section: SectionRegistration,
		Data: ViewData{
			"legend":                    "Signing up",
			"value_username":            wl.Username,
			"value_email":               wl.Email,
			"placeholder_username":      "Username",
			"placeholder_email":         "Email",
			"placeholder_password":      "Password",
			"placeholder_confirm":       "Confirm",
			"login_text":                "Already registered,",
			"login_link":                "log in now",
			"submit_text":               "Sign Up",
			"terms_and_conditions_text": "By clicking Sign Up, you agree to our Terms and that you have read our",
			"terms_and_conditions_link": "Data Use Policy",
		},
	}
}

func (p *Processor) sectionUser(principal *Principal) Outcome {
	data := ViewData{"current_user": nil}
	if principal.Authenticated() {
		data["current_user"] = principal
	}
	return Outcome{Section: SectionUser, Data: data}
}

// Login attempts to authenticate the whitelisted credentials. Every failure
// re-renders the login form with the entered username echoed; success
// persists the principal, queues a flash and redirects to the private area.
func (p *Processor) Login(ctx context.Context, wl Whitelist, principal *Principal, sess SessionWriter) Outcome {
	if wl.Username == "" || wl.Password == "" {
		return p.sectionLogin(wl, principal).withMessage(
			Danger("Please fill in all fields!"),
		)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	account, err := p.repo.Accounts().GetByName(ctx, p.sanitizer.PageName(wl.Username, 100))
	if err != nil {
		if !IsRecordNotFound(err) {
			p.logger.Error("login: account lookup by name: %v", err)
		}
		account, err = p.repo.Accounts().GetByEmail(ctx, p.sanitizer.Email(wl.Username))
		if err != nil {
			if !IsRecordNotFound(err) {
				p.logger.Error("login: account lookup by email: %v", err)
			}
			return p.sectionLogin(wl, principal).withMessage(
				Danger("The data you entered is not correct!"),
			)
		}
	}

	if !account.Active {
		return p.sectionLogin(wl, principal).withMessage(
			Danger("Your account is not activated, all accounts need to be activated " +
				"by an activation link that arrives via email to the address you provided."),
		)
	}

	if err := ComparePasswordAndHash(wl.Password, account.PasswordHash); err != nil {
		return p.sectionLogin(wl, principal).withMessage(
			Danger("The data you entered is not correct!"),
		)
	}

	if err := sess.SetPrincipal(PrincipalFromAccount(account)); err != nil {
		p.logger.Error("login: persisting principal: %v", err)
		return Outcome{Messages: []Message{Danger("Error while logging in!")}}
	}

	if err := sess.Flash(Success("You have been successfully logged in.")); err != nil {
		p.logger.Error("login: queueing flash: %v", err)
	}

	return Outcome{Redirect: p.cfg.GetPrivateAreaRoute()}
}

// Registration creates a new, inactive account and sends the confirmation
// email. The existence checks and the insert run outside a transaction, so
// two concurrent registrations for the same name can race; the unique
// constraints on the table catch the loser.
func (p *Processor) Registration(ctx context.Context, wl Whitelist, principal *Principal) Outcome {
	if wl.Username == "" || wl.Email == "" || wl.Password == "" || wl.Confirm == "" {
		return p.sectionRegistration(wl, principal).withMessage(
			Danger("Please fill in all fields!"),
		)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := p.repo.Accounts().GetByName(ctx, wl.Username); err == nil {
		return p.sectionRegistration(wl, principal).withMessage(
			Danger("This username is already assigned!"),
		)
	} else if !IsRecordNotFound(err) {
		p.logger.Error("registration: username lookup: %v", err)
		return p.sectionRegistration(wl, principal).withMessage(
			Danger("Error saving user data!"),
		)
	}

	if _, err := p.repo.Accounts().GetByEmail(ctx, wl.Email); err == nil {
		return p.sectionRegistration(wl, principal).withMessage(
			Danger("This email address is already assigned!"),
		)
	} else if !IsRecordNotFound(err) {
		p.logger.Error("registration: email lookup: %v", err)
		return p.sectionRegistration(wl, principal).withMessage(
			Danger("Error saving user data!"),
		)
	}

	total, err := p.repo.Accounts().Count(ctx)
	if err != nil {
		p.logger.Error("registration: account count: %v", err)
		return p.sectionRegistration(wl, principal).withMessage(
			Danger("Error saving user data!"),
		)
	}
	if total >= p.cfg.GetMaxAccounts() {
		return p.sectionRegistration(wl, principal).withMessage(
			Danger("The maximum number of new users has been reached, currently no registration is possible!"),
		)
	}

	if msg, ok := p.validatePassword(wl.Password, wl.Confirm); !ok {
		return p.sectionRegistration(wl, principal).withMessage(msg)
	}

	hash, err := HashPassword(wl.Password)
	if err != nil {
		p.logger.Error("registration: hashing password: %v", err)
		return p.sectionRegistration(wl, principal).withMessage(
			Danger("Error setting the password value!"),
		)
	}

	account := &Account{
		Name:         wl.Username,
		Email:        wl.Email,
		PasswordHash: hash,
		Salt:         NewSalt(),
		Role:         RoleGuest,
		Active:       false,
	}

	if account, err = p.repo.Accounts().Create(ctx, account); err != nil {
		p.logger.Error("registration: persisting account: %v", err)
		return p.sectionRegistration(wl, principal).withMessage(
			Danger("Error saving user data!"),
		)
	}

	// The account stays persisted even when the mail cannot go out; there is
	// no rollback and no retry, only the user-facing message.
	if err := p.sendConfirmation(account); err != nil {
		p.logger.Error("registration: confirmation email: %v", err)
		return p.sectionRegistration(wl, principal).withMessage(
			Danger("Email could not be sent. Check your email configuration!"),
		)
	}

	return Outcome{Messages: []Message{
		Success("Thank you for registering on our site. We will send you a " +
			"confirmation email containing your activation link."),
	}}
}

// Confirmation validates a confirmation link and activates the account.
// Every path is terminal: messages travel as session flash across the
// redirect to the login page.
func (p *Processor) Confirmation(ctx context.Context, wl Whitelist, sess SessionWriter) Outcome {
	login := p.cfg.GetLoginRoute()

	if wl.User == "" || wl.Key == "" {
		p.flash(sess, Danger("The data is not complete, please contact our support."))
		return Outcome{Redirect: login}
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	account, err := p.repo.Accounts().GetByName(ctx, wl.User)
	if err != nil {
		if !IsRecordNotFound(err) {
			p.logger.Error("confirmation: account lookup: %v", err)
		}
		p.flash(sess, Danger("This account no longer exists."))
		return Outcome{Redirect: login}
	}

	if wl.Key != ConfirmationKey(account.PasswordHash, account.Salt) {
		p.flash(sess, Danger("The passed key is invalid, please contact our support."))
		return Outcome{Redirect: login}
	}

	if err := p.repo.Accounts().Activate(ctx, account.ID); err != nil {
		p.logger.Error("confirmation: activating account: %v", err)
		p.flash(sess, Danger("Error saving user data!"))
		return Outcome{Redirect: login}
	}

	p.flash(sess, Success("Thank you, your account has just been activated. You can log in now."))
	return Outcome{Redirect: login}
}

// Logout clears the session principal. Without an authenticated principal it
// is a no-op.
func (p *Processor) Logout(principal *Principal, sess SessionWriter) Outcome {
	if !principal.Authenticated() {
		return Outcome{}
	}

	if err := sess.ClearPrincipal(); err != nil {
		p.logger.Error("logout: clearing principal: %v", err)
		return Outcome{}
	}

	p.flash(sess, Success("You successfully logged out."))
	return Outcome{Redirect: p.cfg.GetLoginRoute()}
}

func (p *Processor) validatePassword(password, confirm string) (Message, bool) {
	min := p.cfg.GetPasswordMinLength()
	max := p.cfg.GetPasswordMaxLength()

	if err := validation.Validate(password, validation.RuneLength(min, 0)); err != nil {
		return Danger(fmt.Sprintf("The password should consist of at least %d characters!", min)), false
	}

	if err := validation.Validate(password, validation.RuneLength(0, max)); err != nil {
		return Danger(fmt.Sprintf("The password should consist of a maximum of %d characters!", max)), false
	}

	if err := validation.Validate(confirm, validation.By(validateStringEquals(password))); err != nil {
		return Danger("The password is not equal to password confirm in comparison!"), false
	}

	return Message{}, true
}

func validateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return fmt.Errorf("values must match")
		}
		return nil
	}
}

func (p *Processor) sendConfirmation(account *Account) error {
	link := fmt.Sprintf("%s/confirmation/?action=confirmation&key=%s&user=%s",
		p.cfg.GetSiteURL(),
		url.QueryEscape(ConfirmationKey(account.PasswordHash, account.Salt)),
		url.QueryEscape(account.Name),
	)

	subject := "Email Activation Message"
	body := fmt.Sprintf("Hi %s,\r\n\r\nthanks for registering at our website.\r\n"+
		"To activate your account click the link below!\r\n\r\nActivation Link: %s",
		account.Name, link)

	headers := map[string]string{
		"From":     p.cfg.GetMailFrom(),
		"Reply-To": p.cfg.GetMailReplyTo(),
	}

	return p.mailer.Send(account.Email, subject, body, headers)
}

func (p *Processor) flash(sess SessionWriter, msg Message) {
	if err := sess.Flash(msg); err != nil {
		p.logger.Error("queueing flash message: %v", err)
	}
}

func (o Outcome) withMessage(msgs ...Message) Outcome {
	o.Messages = append(o.Messages, msgs...)
	return o
}
