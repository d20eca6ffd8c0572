package main

import (
	"blogicum/internal/db"
	"blogicum/internal/models"
	"blogicum/internal/services"
	"blogicum/internal/utils"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04"

type admin struct {
	taxonomy *services.TaxonomyService
	users    *services.UserService
}

// newRootCmd builds the command tree. connect is called once, before any
// subcommand runs.
func newRootCmd(connect func() (db.Repository, error)) *cobra.Command {
	a := &admin{}
	root := &cobra.Command{
		Use:          "blogadmin",
		Short:        "Blogicum administration",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			repo, err := connect()
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			a.taxonomy = services.NewTaxonomyService(repo)
			a.users = services.NewUserService(repo)
			return nil
		},
	}
	root.AddCommand(a.categoryCmd(), a.locationCmd(), a.postCmd(), a.userCmd())
	return root
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func parseID(arg string) (uint, error) {
	id, ok := utils.ParseID(arg)
	if !ok {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func (a *admin) categoryCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "category", Aliases: []string{"cat"}, Short: "Manage categories"}

	var in services.CategoryInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.taxonomy.AddCategory(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %q (%s)\n", c.Title, c.Slug)
			return nil
		},
	}
	add.Flags().StringVar(&in.Title, "title", "", "category title")
	add.Flags().StringVar(&in.Description, "description", "", "category description")
	add.Flags().StringVar(&in.Slug, "slug", "", "URL identifier; derived from the title when omitted")
	add.Flags().BoolVar(&in.Hidden, "hidden", false, "create the category unpublished")
	add.MarkFlagRequired("title")

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.taxonomy.Categories(cmd.Context())
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "ID", "Slug", "Title", "Published", "Created")
			for _, c := range categories {
				table.Append([]string{
					strconv.FormatUint(uint64(c.ID), 10),
					c.Slug,
					c.Title,
					yesNo(c.IsPublished),
					c.CreatedAt.Local().Format(timeLayout),
				})
			}
			table.Render()
			return nil
		},
	}

	publish := func(use, short string, published bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <slug>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := a.taxonomy.SetCategoryPublished(cmd.Context(), args[0], published)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Category %s published: %s\n", c.Slug, yesNo(c.IsPublished))
				return nil
			},
		}
	}

	del := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a category; its posts are kept without one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.taxonomy.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list,
		publish("publish", "Publish a category", true),
		publish("hide", "Hide a category and its posts", false),
		del)
	return cmd
}

func (a *admin) locationCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "location", Aliases: []string{"loc"}, Short: "Manage locations"}

	var (
		name   string
		hidden bool
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.taxonomy.AddLocation(cmd.Context(), name, hidden)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created location %q with id %d\n", l.Name, l.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "location name")
	add.Flags().BoolVar(&hidden, "hidden", false, "create the location unpublished")
	add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			locations, err := a.taxonomy.Locations(cmd.Context())
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "ID", "Name", "Published")
			for _, l := range locations {
				table.Append([]string{strconv.FormatUint(uint64(l.ID), 10), l.Name, yesNo(l.IsPublished)})
			}
			table.Render()
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a location; its posts are kept without one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.taxonomy.DeleteLocation(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted location %d\n", id)
			return nil
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}

func categoryTitle(c *models.Category) string {
	if c == nil {
		return "-"
	}
	return c.Title
}

func (a *admin) postCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "post", Short: "Moderate posts"}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List all posts, drafts and scheduled ones included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := a.taxonomy.Posts(cmd.Context(), search)
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "ID", "Title", "Author", "Category", "Pub date", "Published", "Comments")
			for _, p := range posts {
				table.Append([]string{
					strconv.FormatUint(uint64(p.ID), 10),
					utils.Truncate(p.Title, 40),
					p.Author.Username,
					categoryTitle(p.Category),
					p.PubDate.Local().Format(timeLayout),
					yesNo(p.IsPublished),
					strconv.Itoa(p.CommentCount),
				})
			}
			table.Render()
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "only posts whose title or text contains this")

	publish := func(use, short string, published bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				p, err := a.taxonomy.SetPostPublished(cmd.Context(), id, published)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Post %d published: %s\n", p.ID, yesNo(p.IsPublished))
				return nil
			},
		}
	}

	cmd.AddCommand(list,
		publish("publish", "Publish a post", true),
		publish("hide", "Hide a post from readers", false))
	return cmd
}

func (a *admin) userCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage accounts"}

	var in services.RegistrationInput
	add := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.users.Register(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s with id %d\n", u.Username, u.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.Username, "username", "", "login name")
	add.Flags().StringVar(&in.Email, "email", "", "email address")
	add.Flags().StringVar(&in.Password, "password", "", "plain-text password")
	add.MarkFlagRequired("username")
	add.MarkFlagRequired("password")

	del := &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an account with all its posts and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.users.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, del)
	return cmd
}
