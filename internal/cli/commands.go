package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/service"
)

func newRegisterCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "register USERNAME EMAIL PASSWORD",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withForum(cmd, func(ctx context.Context, f *service.Forum) error {
				user, err := f.Register(ctx, args[0], args[1], args[2])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "registered and logged in as %s\n", user.Username)
				return nil
			})
		},
	}
}

func newLoginCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login USERNAME PASSWORD",
		Short: "Log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withForum(cmd, func(ctx context.Context, f *service.Forum) error {
				user, err := f.Login(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", user.Username)
				return nil
			})
		},
	}
}

func newLogoutCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withForum(cmd, func(ctx context.Context, f *service.Forum) error {
				if err := f.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			})
		},
	}
}

func newWhoamiCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withForum(cmd, func(ctx context.Context, f *service.Forum) error {
				user, ok := f.Session.Current()
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), domain.StateLoggedOut)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Username, user.Email, user.Role())
				return nil
			})
		},
	}
}

func newPostCommand(o *options) *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Publish a post as the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withForum(cmd, func(ctx context.Context, f *service.Forum) error {
				post, err := f.Publish(ctx, title, content)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "published %s\n", post.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "post title")
	cmd.Flags().StringVar(&content, "content", "", "post content")
	return cmd
}

func newFeedCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withForum(cmd, func(ctx context.Context, f *service.Forum) error {
				posts := f.Posts.List()
				if len(posts) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no posts yet")
					return nil
				}
				for _, p := range posts {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  by %s, %s\n", p.ID, p.Title, p.AuthorUsername, p.CreatedAt.Format(time.DateTime))
				}
				return nil
			})
		},
	}
}

func newShowCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show POST_ID",
		Short: "Print one post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withForum(cmd, func(ctx context.Context, f *service.Forum) error {
				p, ok := f.Posts.Get(args[0])
				if !ok {
					return fmt.Errorf("%s: %w", args[0], domain.ErrPostNotFound)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s\nby %s, %s\n\n%s\n", p.Title, p.AuthorUsername, p.CreatedAt.Format(time.DateTime), p.Content)
				return nil
			})
		},
	}
}

func newUserAddCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "useradd USERNAME EMAIL PASSWORD",
		Short: "Create an account (admin only, no login)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withForum(cmd, func(ctx context.Context, f *service.Forum) error {
				user, err := f.CreateUser(ctx, args[0], args[1], args[2])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", user.Username, user.ID)
				return nil
			})
		},
	}
}

func newExportCommand(o *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write users and posts as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withForum(cmd, func(ctx context.Context, f *service.Forum) error {
				raw, err := json.MarshalIndent(f.Transfer.Export(ctx), "", "  ")
				if err != nil {
					return err
				}
				raw = append(raw, '\n')

				if out == "" || out == "-" {
					_, err = cmd.OutOrStdout().Write(raw)
					return err
				}
				if err := os.WriteFile(out, raw, 0o600); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace users and posts from an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return o.withForum(cmd, func(ctx context.Context, f *service.Forum) error {
				if err := f.Transfer.Import(ctx, raw); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported: %d users, %d posts\n", f.Users.Len(), f.Posts.Len())
				return nil
			})
		},
	}
}

// readInput reads path, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return raw, nil
}
