package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"snapbook/internal/applog"
	"snapbook/internal/booth"
	"snapbook/internal/canvas"
	"snapbook/internal/filter"
	"snapbook/internal/pixel"
	"snapbook/internal/store"
	"snapbook/internal/strip"
	"snapbook/internal/yuv"
)

type app struct {
	config  *Config
	verbose bool
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "snapbook",
		Short:         "Photo booth strips and scrapbook pages",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.config = loadConfig()
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			applog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		a.editCommand(),
		a.filterCommand(),
		a.decodeCommand(),
		a.boothCommand(),
		a.stripCommand(),
		a.pagesCommand(),
		a.renderCommand(),
	)
	return root
}

func (a *app) openStore() (*store.Store, error) {
	return store.Open(a.config.DatabasePath())
}

func (a *app) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [page-id...]",
		Short: "Edit pages in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			var pages []*canvas.Page
			for _, arg := range args {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("page id %q: %w", arg, err)
				}
				p, err := st.LoadPage(cmd.Context(), id)
				if err != nil {
					return err
				}
				pages = append(pages, p)
			}

			// Log lines would corrupt the alternate screen.
			if !a.verbose {
				applog.SetLogger(nil)
			}
			p := tea.NewProgram(
				initialModel(a.config, st, pages),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			return err
		},
	}
}

func (a *app) filterCommand() *cobra.Command {
	var (
		name   string
		mirror bool
	)
	cmd := &cobra.Command{
		Use:   "filter <input> <output>",
		Short: "Apply a vintage filter to an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = a.config.DefaultFilter
			}
			img, err := pixel.ReadFile(args[0])
			if err != nil {
				return err
			}
			if mirror {
				img = pixel.FlipHorizontal(img)
			}
			k := filter.Parse(name)
			if err := pixel.WriteFile(args[1], filter.Apply(img, k)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k.DisplayName(), args[1])
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "filter", "f", "", "filter name (sepia, polaroid, kodachrome, vintage, bw, cyanotype, none)")
	cmd.Flags().BoolVar(&mirror, "mirror", false, "flip the image horizontally first")
	return cmd
}

// readI420 loads a raw planar frame: a full Y plane followed by quarter
// size U and V planes.
func readI420(path string, width, height int) (yuv.Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return yuv.Frame{}, err
	}
	cw, ch := (width+1)/2, (height+1)/2
	ySize, cSize := width*height, cw*ch
	if width <= 0 || height <= 0 || len(data) < ySize+2*cSize {
		return yuv.Frame{}, &yuv.FormatError{Reason: fmt.Sprintf("%s holds %d bytes, a %dx%d frame needs %d", path, len(data), width, height, ySize+2*cSize)}
	}
	return yuv.Frame{
		Width:  width,
		Height: height,
		Planes: []yuv.Plane{
			{Data: data[:ySize], RowStride: width, PixelStride: 1},
			{Data: data[ySize : ySize+cSize], RowStride: cw, PixelStride: 1},
			{Data: data[ySize+cSize : ySize+2*cSize], RowStride: cw, PixelStride: 1},
		},
	}, nil
}

func (a *app) decodeCommand() *cobra.Command {
	var (
		width, height int
		name          string
		mirror        bool
	)
	cmd := &cobra.Command{
		Use:   "decode <frame.yuv> <output>",
		Short: "Convert a raw I420 camera frame into an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := readI420(args[0], width, height)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("mirror") {
				mirror = a.config.Mirror
			}
			res := <-booth.Develop(cmd.Context(), frame, filter.Parse(name), mirror)
			if res.Err != nil {
				return res.Err
			}
			return pixel.WriteFile(args[1], res.Shot)
		},
	}
	cmd.Flags().IntVar(&width, "width", 640, "frame width")
	cmd.Flags().IntVar(&height, "height", 480, "frame height")
	cmd.Flags().StringVarP(&name, "filter", "f", "none", "filter to apply after decoding")
	cmd.Flags().BoolVar(&mirror, "mirror", false, "flip the frame horizontally (default from config)")
	return cmd
}

func (a *app) boothCommand() *cobra.Command {
	var (
		width, height int
		name          string
	)
	cmd := &cobra.Command{
		Use:   "booth <output> <frame.yuv>...",
		Short: "Run a booth session over raw I420 frames and compose its strip",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := booth.NewSession(a.config.ShotCount, a.config.Mirror)
			if name == "" {
				name = a.config.DefaultFilter
			}
			session.SetFilter(name)
			for _, path := range args[1:] {
				if session.Complete() {
					applog.Logger().Warn("booth: session complete, frame ignored", "path", path)
					continue
				}
				frame, err := readI420(path, width, height)
				if err != nil {
					return err
				}
				res := <-booth.Develop(cmd.Context(), frame, session.Filter(), session.Mirrored)
				if _, err := session.Accept(res); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			if !session.Complete() {
				applog.Logger().Warn("booth: strip has fewer shots than planned", "shots", len(session.Shots()), "target", session.Target)
			}
			out, err := session.Strip()
			if err != nil {
				return err
			}
			path := a.config.GetSavePath(args[0])
			if err := pixel.WriteFile(path, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %s: %d shots, %s filter: %s\n",
				session.Code, len(session.Shots()), session.Filter().DisplayName(), path)
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 640, "frame width")
	cmd.Flags().IntVar(&height, "height", 480, "frame height")
	cmd.Flags().StringVarP(&name, "filter", "f", "", "filter for every shot (default from config)")
	return cmd
}

func (a *app) stripCommand() *cobra.Command {
	var (
		name  string
		title string
	)
	cmd := &cobra.Command{
		Use:   "strip <output> <photo>...",
		Short: "Compose photos into a photo-booth strip",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				name = a.config.DefaultFilter
			}
			session := booth.NewSession(len(args)-1, false)
			session.SetFilter(name)
			for _, path := range args[1:] {
				img, err := pixel.ReadFile(path)
				if err != nil {
					return err
				}
				if _, err := session.AddShot(img); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			var opts []strip.Option
			if title != "" {
				opts = append(opts, strip.WithTitle(title))
			}
			out, err := session.Strip(opts...)
			if err != nil {
				return err
			}
			path := a.config.GetSavePath(args[0])
			if err := pixel.WriteFile(path, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %s: %s\n", session.Code, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "filter", "f", "", "filter for every shot (default from config)")
	cmd.Flags().StringVar(&title, "title", "", "header caption")
	return cmd
}

func (a *app) pagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List stored pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			pages, err := st.ListPages(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tITEMS\tMODIFIED\tPREVIEW")
			for _, p := range pages {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", p.ID, p.Title, p.ItemCount(),
					p.Modified.Format("2006-01-02 15:04"), p.PreviewText())
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <page-id>",
		Short: "Delete a stored page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("page id %q: %w", args[0], err)
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			return st.DeletePage(cmd.Context(), id)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Print the number of stored pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			n, err := st.CountPages(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	})
	return cmd
}

func (a *app) renderCommand() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "render <page-id> <output>",
		Short: "Render a stored page to PNG or JPEG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("page id %q: %w", args[0], err)
			}
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			p, err := st.LoadPage(cmd.Context(), id)
			if err != nil {
				return err
			}
			return exportPage(p, a.config.GetSavePath(args[1]), width, height, nil)
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "output width (default fits every item)")
	cmd.Flags().IntVar(&height, "height", 0, "output height (default fits every item)")
	return cmd
}
