package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/naveenspark/hackboard/internal/browser"
	"github.com/naveenspark/hackboard/internal/participation"
	"github.com/naveenspark/hackboard/internal/picker"
	"github.com/naveenspark/hackboard/pkg/client"
	"github.com/naveenspark/hackboard/pkg/domain"
)

func (c *cli) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", c.out)
	email := fs.String("email", "", "account email")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	if *email == "" {
		v, err := c.prompt("Email: ")
		if err != nil {
			return err
		}
		*email = v
	}
	password, err := c.readSecret("Password: ")
	if err != nil {
		return err
	}

	student, err := c.sess.Login(ctx, c.api, *email, password)
	if err != nil {
		return err
	}
	name := student.Name
	if name == "" {
		name = student.Email
	}
	fmt.Fprintf(c.out, "Signed in as %s\n", name)
	return nil
}

func (c *cli) logout(_ context.Context, _ []string) error {
	if !c.sess.IsAuthenticated() {
		fmt.Fprintln(c.out, "Already signed out.")
		return nil
	}
	if err := c.sess.Logout(); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	fmt.Fprintln(c.out, "Signed out.")
	return nil
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register", c.out)
	req := client.RegisterRequest{}
	fs.StringVar(&req.Name, "name", "", "full name")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Grade, "grade", "", "grade")
	fs.StringVar(&req.District, "district", "", "district")
	fs.StringVar(&req.State, "state", "", "state")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"Name", &req.Name},
		{"Email", &req.Email},
		{"Grade", &req.Grade},
		{"District", &req.District},
		{"State", &req.State},
	} {
		if strings.TrimSpace(*f.dst) != "" {
			continue
		}
		v, err := c.prompt(f.label + ": ")
		if err != nil {
			return err
		}
		*f.dst = v
	}
	password, err := c.readSecret("Password: ")
	if err != nil {
		return err
	}
	req.Password = password

	if _, err := c.api.Register(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Account created for %s. Run 'hackboard login' to sign in.\n", req.Email)
	return nil
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list", c.out)
	search := fs.String("search", "", "fuzzy filter on titles")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	hs, err := c.api.ListHackathons(ctx)
	if err != nil {
		return err
	}
	hs = domain.SearchHackathons(hs, *search)
	if len(hs) == 0 {
		if *search != "" {
			fmt.Fprintf(c.out, "No hackathons match %q.\n", *search)
		} else {
			fmt.Fprintln(c.out, "No hackathons yet.")
		}
		return nil
	}
	return c.printHackathons(hs)
}

func (c *cli) mine(ctx context.Context, _ []string) error {
	if err := c.requireAuth("/my-hackathons"); err != nil {
		return err
	}
	hs, err := c.api.MyHackathons(ctx)
	if err != nil {
		return err
	}
	if len(hs) == 0 {
		fmt.Fprintln(c.out, "You have not joined any hackathons yet. Use 'hackboard join <code>'.")
		return nil
	}
	return c.printHackathons(hs)
}

func (c *cli) show(ctx context.Context, args []string) error {
	positional, err := parseArgs(newFlagSet("show", c.out), args)
	if err != nil {
		return err
	}
	id, err := oneArg(positional, "hackathon id")
	if err != nil {
		return err
	}
	h, err := c.api.GetHackathon(ctx, id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("hackathon %s not found", id)
		}
		return err
	}
	c.printHackathon(*h)
	return nil
}

func (c *cli) join(ctx context.Context, args []string) error {
	fs := newFlagSet("join", c.out)
	passkey := fs.String("passkey", "", "passkey, if the hackathon needs one")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	code, err := oneArg(positional, "invite code")
	if err != nil {
		return err
	}
	if err := c.requireAuth("/my-hackathons"); err != nil {
		return err
	}

	prompt := func(context.Context) (string, error) {
		if *passkey != "" {
			return *passkey, nil
		}
		fmt.Fprintln(c.out, "This hackathon requires a passkey.")
		return c.readSecret("Passkey: ")
	}
	out, err := participation.NewJoiner(c.api).JoinByCode(ctx, code, prompt, nil)
	if err != nil {
		if errors.Is(err, participation.ErrCancelled) {
			return errors.New("join cancelled")
		}
		return err
	}
	if out == participation.JoinSucceeded {
		fmt.Fprintln(c.out, "Joined hackathon!")
	}
	return nil
}

func (c *cli) submit(ctx context.Context, args []string) error {
	fs := newFlagSet("submit", c.out)
	kindFlag := fs.String("kind", "", "video, audio, document or text")
	file := fs.String("file", "", "path of the file to submit")
	text := fs.String("text", "", "text to submit")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	id, err := oneArg(positional, "hackathon id")
	if err != nil {
		return err
	}
	kind, err := domain.ParseArtifactKind(*kindFlag)
	if err != nil {
		return &client.ValidationError{Field: "kind", Reason: err.Error()}
	}
	if err := c.requireAuth("/hackathon/" + id + "/submit"); err != nil {
		return err
	}

	p, err := c.submissionPicker(kind, *file, *text)
	if err != nil {
		return err
	}
	u := participation.NewUploader(c.api, p)
	if err := u.Select(ctx, kind); err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			return errors.New("nothing selected, submission cancelled")
		}
		return err
	}
	if a, ok := u.Pending(); ok && a.Kind.Binary() {
		fmt.Fprintf(c.out, "Uploading %s (%s)...\n", a.Name, a.MIMEType)
	}
	ref, err := u.Upload(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Submission received (%s).\n", ref.ID)
	return nil
}

// submissionPicker uses the flags when given and asks on stdin otherwise.
func (c *cli) submissionPicker(kind domain.ArtifactKind, file, text string) (picker.Picker, error) {
	switch {
	case file != "" && text != "":
		return nil, &client.ValidationError{Field: "file", Reason: "use either --file or --text, not both"}
	case file != "":
		if !kind.Binary() {
			return nil, &client.ValidationError{Field: "file", Reason: "text submissions take --text"}
		}
		a, err := picker.LoadFile(file, kind, 0)
		if err != nil {
			return nil, err
		}
		return picker.Static{Artifact: a}, nil
	case text != "":
		if kind.Binary() {
			return nil, &client.ValidationError{Field: "text", Reason: string(kind) + " submissions take --file"}
		}
		a, err := picker.Text(text)
		if err != nil {
			return nil, err
		}
		return picker.Static{Artifact: a}, nil
	}
	return picker.Kinds{
		Files: picker.PathPicker{Prompt: c.promptCtx},
		Text:  picker.TextPicker{Prompt: c.promptCtx},
	}, nil
}

func (c *cli) result(ctx context.Context, args []string) error {
	positional, err := parseArgs(newFlagSet("result", c.out), args)
	if err != nil {
		return err
	}
	id, err := oneArg(positional, "hackathon id")
	if err != nil {
		return err
	}
	r, err := participation.NewGuard(c.api, c.sess).FetchResult(ctx, id, "/view-result/"+id)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			fmt.Fprintln(c.out, "No result found. There is no evaluation for this submission yet.")
			return nil
		}
		return err
	}
	c.printResult(*r)
	return nil
}

func (c *cli) open(ctx context.Context, args []string) error {
	fs := newFlagSet("open", c.out)
	web := fs.Bool("web", false, "open the hackathon page instead of the attachment")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	id, err := oneArg(positional, "hackathon id")
	if err != nil {
		return err
	}

	url := strings.TrimRight(c.cfg.WebURL, "/") + "/hackathon/" + id
	if !*web {
		h, err := c.api.GetHackathon(ctx, id)
		if err != nil {
			return err
		}
		if h.FileAttachmentURL == "" {
			return fmt.Errorf("%s has no attachment", h.Title)
		}
		url = h.FileAttachmentURL
	}
	if err := browser.Open(url); err != nil {
		if errors.Is(err, browser.ErrUnsupportedURL) {
			return err
		}
		fmt.Fprintf(c.out, "Could not open a browser. Visit this URL manually:\n  %s\n", url)
	}
	return nil
}
