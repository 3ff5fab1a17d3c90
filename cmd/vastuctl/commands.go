package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dalemusser/vastusite/internal/apiclient"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const requestTimeout = 30 * time.Second

func newLoginCmd(c *cli) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store an API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email = firstNonEmpty(email, os.Getenv("VASTU_ADMIN_EMAIL"), c.cfg.Email)
			password = firstNonEmpty(password, os.Getenv("VASTU_ADMIN_PASSWORD"))
			in := bufio.NewReader(cmd.InOrStdin())
			var err error
			if email == "" {
				if email, err = prompt(cmd, in, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptSecret(cmd, in, "Password: "); err != nil {
					return err
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			client := c.client()
			tok, err := client.Login(ctx, email, password)
			if err != nil {
				return describe(err)
			}

			c.cfg.Email = email
			c.cfg.Token = tok.Token
			c.cfg.ExpiresAt = tok.ExpiresAt
			if c.apiURL != "" {
				c.cfg.APIURL = client.BaseURL()
			}
			if err := saveConfig(c.configPath, c.cfg); err != nil {
				return err
			}
			c.logger.Debug("token stored", zap.String("path", c.configPath), zap.Time("expires_at", tok.ExpiresAt))
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (token valid until %s)\n", email, tok.ExpiresAt.Local().Format(time.RFC1123))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (env VASTU_ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (env VASTU_ADMIN_PASSWORD)")
	return cmd
}

// promptSecret reads a line without echo when stdin is a terminal. Piped
// input falls back to a plain line read.
func promptSecret(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return prompt(cmd, in, label)
	}
	fmt.Fprint(cmd.ErrOrStderr(), label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.cfg.Token = ""
			c.cfg.ExpiresAt = time.Time{}
			if err := saveConfig(c.configPath, c.cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List the visible items of a resource",
		Long:  "List the visible items of a resource, newest first. Hidden items can\nstill be fetched with get.\n\nResources: " + strings.Join(resourceNames(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := lookup(c.client(), args[0])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			items, err := o.list(ctx)
			if err != nil {
				return describe(err)
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), items)
			}
			return printTable(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full JSON instead of a table")
	return cmd
}

func newGetCmd(c *cli) *cobra.Command {
	var bySlug bool
	cmd := &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := lookup(c.client(), args[0])
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			var item any
			if bySlug {
				if o.bySlug == nil {
					return fmt.Errorf("%s has no slugs", args[0])
				}
				item, err = o.bySlug(ctx, args[1])
			} else {
				item, err = o.get(ctx, args[1])
			}
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	cmd.Flags().BoolVar(&bySlug, "slug", false, "treat the argument as a slug")
	return cmd
}

func newCreateCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create <resource> --file item.json",
		Short: "Create an item from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := lookup(c.client(), args[0])
			if err != nil {
				return err
			}
			body, err := readBody(cmd, file)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			item, err := o.create(ctx, body)
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `JSON document ("-" reads stdin)`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newUpdateCmd(c *cli) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <resource> <id> --file patch.json",
		Short: "Update an item; fields missing from the file are kept",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := lookup(c.client(), args[0])
			if err != nil {
				return err
			}
			body, err := readBody(cmd, file)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			item, err := o.update(ctx, args[1], body)
			if err != nil {
				return describe(err)
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", `JSON document ("-" reads stdin)`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := lookup(c.client(), args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete %s %s? This cannot be undone. [y/N] ", args[0], args[1]))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := o.del(ctx, args[1]); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s.\n", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

/*─────────────────────────────────────────────────────────────────────────────*
| helpers                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// describe turns API errors into one readable line plus field details.
func describe(err error) error {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if apiclient.IsUnauthorized(err) {
		return fmt.Errorf("%s (run `vastuctl login`)", apiErr.Message)
	}
	var b strings.Builder
	b.WriteString(apiErr.Message)
	for _, f := range apiErr.Fields {
		fmt.Fprintf(&b, "\n  %s: %s", f.Field, f.Message)
	}
	return errors.New(b.String())
}

func readBody(cmd *cobra.Command, file string) (json.RawMessage, error) {
	var (
		raw []byte
		err error
	)
	if file == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%s is not valid JSON", file)
	}
	return json.RawMessage(raw), nil
}

func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func confirm(cmd *cobra.Command, question string) (bool, error) {
	answer, err := prompt(cmd, bufio.NewReader(cmd.InOrStdin()), question)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable shows id, a label and the visibility of each item.
func printTable(w io.Writer, items any) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No items.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tVISIBLE")
	for _, row := range rows {
		label := ""
		for _, key := range []string{"title", "name", "caption", "image"} {
			if s, ok := row[key].(string); ok && s != "" {
				label = s
				break
			}
		}
		visible := "no"
		if active, _ := row["isActive"].(bool); active {
			visible = "yes"
		}
		fmt.Fprintf(tw, "%v\t%s\t%s\n", row["_id"], label, visible)
	}
	return tw.Flush()
}
