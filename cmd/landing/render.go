package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vcrobe/landing/appcomponents/pages"
	"github.com/vcrobe/landing/runtime"
	"github.com/vcrobe/landing/vdom"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		revision string
		out      string
		fragment bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the Home page to HTML",
		Long: `Renders a revision of the Home page as a complete HTML document,
or just the page markup with --fragment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rev := a.cfg.PageRevision()
			if revision != "" {
				var err error
				if rev, err = pages.ParseRevision(revision); err != nil {
					return err
				}
			}
			home, err := pages.NewHomeAt(rev)
			if err != nil {
				return err
			}

			var body []byte
			if fragment {
				tree, err := runtime.NewStaticRenderer(runtime.WithDevMode(a.cfg.Dev)).Render(cmd.Context(), home)
				if err != nil {
					return err
				}
				s, err := vdom.RenderString(tree)
				if err != nil {
					return err
				}
				body = []byte(s)
			} else {
				body, _, err = a.newSite(nil).Render(cmd.Context(), "cli", home)
				if err != nil {
					return err
				}
			}

			if out == "" {
				if _, err := cmd.OutOrStdout().Write(body); err != nil {
					return fmt.Errorf("write page: %w", err)
				}
				return nil
			}
			return writeFile(out, body)
		},
	}

	cmd.Flags().StringVarP(&revision, "revision", "r", "", "Page revision to render (1, 2, 3 or latest)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "Render only the page markup, without the document shell")
	return cmd
}

// writeFile writes body to path. A failed Close is returned like a failed Write.
func writeFile(path string, body []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if _, err := f.Write(body); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
