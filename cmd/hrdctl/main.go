// Command hrdctl runs a single HRD partner API operation and prints the
// result.
//
// Usage:
//
//	hrdctl -config hrdctl.toml -op balance
//	hrdctl -op user-info -id 42 -json
//	hrdctl -op user-update -id 42 -field email=jan@example.com
//	hrdctl -op domain -domain gżegżółka.com
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/jakub-gawryl/hrdapi/apierr"
	"github.com/jakub-gawryl/hrdapi/client"
	"github.com/jakub-gawryl/hrdapi/convert"
	"github.com/jakub-gawryl/hrdapi/envelope"
	"github.com/jakub-gawryl/hrdapi/session"
	"github.com/pkg/errors"
)

type options struct {
	op      string
	name    string
	id      string
	domain  string
	fields  fieldFlags
	json    bool
	timeout time.Duration
}

// fieldFlags collects repeated -field name=value flags
type fieldFlags []envelope.Field

func (f *fieldFlags) String() string {
	parts := make([]string, 0, len(*f))
	for _, field := range *f {
		text, _ := field.Value.Text()
		parts = append(parts, field.Name+"="+text)
	}
	return strings.Join(parts, ",")
}

func (f *fieldFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return errors.Errorf("invalid field %q, want name=value", s)
	}
	*f = append(*f, envelope.F(name, envelope.Text(value)))
	return nil
}

func main() {
	var opts options
	configPath := flag.String("config", "hrdctl.toml", "path to the TOML configuration file")
	flag.StringVar(&opts.op, "op", "balance", "operation: login, balance, pricing-info, pricings-list, pricings, user-create, user-update, user-info, user-list, domain")
	flag.StringVar(&opts.name, "name", "", "service name for pricing-info")
	flag.StringVar(&opts.id, "id", "", "user id for user-info and user-update")
	flag.StringVar(&opts.domain, "domain", "", "domain name to convert with the domain operation")
	flag.Var(&opts.fields, "field", "name=value field for user-create and user-update (repeatable)")
	flag.BoolVar(&opts.json, "json", false, "print results and errors as JSON")
	flag.DurationVar(&opts.timeout, "timeout", time.Minute, "overall time limit")
	flag.Parse()
	defer glog.Flush()

	err := func() error {
		if opts.op == "domain" {
			return runDomain(os.Stdout, opts)
		}
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
		defer cancel()
		return run(ctx, cfg, opts, os.Stdout)
	}()
	if err != nil {
		printError(os.Stderr, opts.json, err)
		os.Exit(1)
	}
}

func runDomain(w io.Writer, opts options) error {
	ace, err := convert.DomainToASCII(opts.domain)
	if err != nil {
		return err
	}
	return output(w, opts.json, map[string]string{"domain": opts.domain, "ascii": ace}, ace)
}

// run logs in and performs opts.op, writing its result to w
func run(ctx context.Context, cfg config, opts options, w io.Writer) error {
	c := client.New(session.New(cfg.Session))
	token, err := c.Login(ctx, cfg.Credential)
	if err != nil {
		return err
	}
	glog.V(1).Infof("hrdctl: logged in, running %s", opts.op)

	switch opts.op {
	case "login":
		return output(w, opts.json, map[string]string{"token": token}, token)
	case "balance":
		b, err := c.PartnerGetBalance(ctx)
		if err != nil {
			return err
		}
		return output(w, opts.json, b, fmt.Sprintf("balance %.2f\nrestricted %.2f", b.Balance, b.RestrictedBalance))
	case "pricing-info":
		if opts.name == "" {
			return errors.New("pricing-info requires -name")
		}
		return valueOutput(w, opts.json)(c.PartnerPricingServiceInfo(ctx, opts.name))
	case "pricings-list":
		return valueOutput(w, opts.json)(c.PartnerGetPricingsList(ctx))
	case "pricings":
		return valueOutput(w, opts.json)(c.PartnerGetPricings(ctx))
	case "user-create":
		id, err := c.UserCreate(ctx, opts.fields...)
		if err != nil {
			return err
		}
		return output(w, opts.json, map[string]string{"id": id}, id)
	case "user-update":
		if opts.id == "" {
			return errors.New("user-update requires -id")
		}
		if err := c.UserUpdate(ctx, opts.id, opts.fields...); err != nil {
			return err
		}
		return output(w, opts.json, map[string]string{"id": opts.id}, "updated "+opts.id)
	case "user-info":
		if opts.id == "" {
			return errors.New("user-info requires -id")
		}
		u, err := c.UserInfo(ctx, opts.id)
		if err != nil {
			return err
		}
		return output(w, opts.json, u, userLine(u))
	case "user-list":
		users, err := c.UserList(ctx)
		if err != nil {
			return err
		}
		lines := make([]string, 0, len(users))
		for _, u := range users {
			lines = append(lines, userLine(u))
		}
		return output(w, opts.json, users, strings.Join(lines, "\n"))
	}
	return errors.Errorf("unknown operation %q", opts.op)
}

func valueOutput(w io.Writer, asJSON bool) func(envelope.Value, error) error {
	return func(v envelope.Value, err error) error {
		if err != nil {
			return err
		}
		return output(w, asJSON, v, v.String())
	}
}

func userLine(u client.User) string {
	return strings.TrimSpace(strings.Join([]string{u.ID, u.Login, u.Name, u.Email}, "\t"))
}

func output(w io.Writer, asJSON bool, v interface{}, text string) error {
	if !asJSON {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(w io.Writer, asJSON bool, err error) {
	if asJSON {
		body := map[string]interface{}{"detail": err.Error()}
		var ae *apierr.Error
		if errors.As(err, &ae) {
			body["error"] = ae
		}
		out, _ := json.Marshal(body)
		fmt.Fprintln(w, string(out))
		return
	}
	fmt.Fprintf(w, "hrdctl: %v\n", err)
}
