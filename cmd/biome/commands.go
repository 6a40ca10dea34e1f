package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gekko3d/biome"
	"github.com/gekko3d/biome/render"
)

type runFlags struct {
	configPath string
	scene      string
	seed       int64
	watch      bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "biome",
		Short:        "Animated 3D background scenes",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newDumpCmd(), newValidateCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window and play a scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			return runScene(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	cmd.Flags().StringVarP(&f.scene, "scene", "s", biome.DefaultSceneName, "builtin scene name or scene file")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed, 0 picks one from the clock")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "reload the scene file when it changes")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "debug logging and overlay")
	return cmd
}

// resolveConfig loads the config file, then applies the flags the user set.
func resolveConfig(cmd *cobra.Command, f runFlags) (biome.Config, error) {
	cfg := biome.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = biome.LoadConfig(f.configPath); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("scene") {
		cfg.Scene = f.scene
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("watch") {
		cfg.Watch = f.watch
	}
	if flags.Changed("debug") {
		cfg.Debug = f.debug
	}
	return cfg, cfg.Validate()
}

func runScene(ctx context.Context, cfg biome.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := biome.NewDefaultLogger("biome", cfg.Debug)

	def, err := biome.LoadSceneDef(cfg.Scene)
	if err != nil {
		return err
	}
	scene, err := biome.NewScene(def, biome.NewRand(cfg.Seed))
	if err != nil {
		return err
	}

	var reloads <-chan biome.SceneDef
	if cfg.Watch {
		watcher, err := biome.NewSceneWatcher(cfg.Scene, 0, logger)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		watcher.Start(ctx)
		defer watcher.Stop()
		reloads = watcher.Defs()
		logger.Infof("watching %s", cfg.Scene)
	}

	surface := render.NewSurface(render.Options{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Title:  cfg.Window.Title,
		DPRMin: cfg.DPR.Min,
		DPRMax: cfg.DPR.Max,
		FadeIn: cfg.FadeIn,
		TPS:    cfg.TPS,
		Debug:  cfg.Debug,
	})
	app := biome.Mount(biome.MountOptions{
		Scene:   scene,
		Pointer: surface,
		Logger:  logger,
		Reloads: reloads,
	})
	return playScene(app, surface, logger)
}

type sceneSurface interface {
	Attach(app *biome.App) error
	Run() error
}

// playScene runs app on surface. The app is torn down on every return
// path, including a failed Attach.
func playScene(app *biome.App, surface sceneSurface, logger biome.Logger) error {
	defer app.Teardown()
	if err := surface.Attach(app); err != nil {
		return err
	}

	err := surface.Run()
	if errors.Is(err, biome.ErrRenderUnsupported) {
		logger.Warnf("no drawing surface, scene not shown: %v", err)
		return nil
	}
	return err
}

func newDumpCmd() *cobra.Command {
	var (
		scene  string
		seed   int64
		asYAML bool
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the group counts of a scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := biome.LoadSceneDef(scene)
			if err != nil {
				return err
			}
			s, err := biome.NewScene(def, biome.NewRand(seed))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asYAML {
				data, err := biome.MarshalSceneDef(s.Def())
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			counts := s.GroupCounts()
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintf(out, "scene %s\n", s.Def().Name)
			for _, name := range names {
				fmt.Fprintf(out, "%-16s %d\n", name, counts[name])
			}
			fmt.Fprintf(out, "%-16s %d\n", "total", s.InstanceCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&scene, "scene", "s", biome.DefaultSceneName, "builtin scene name or scene file")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the normalized scene definition instead")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scene-file>",
		Short: "Check a scene file without opening a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := biome.LoadSceneDef(args[0])
			if err != nil {
				return err
			}
			s, err := biome.NewScene(def, biome.NewRand(1))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d groups, %d instances\n", args[0], len(s.GroupCounts()), s.InstanceCount())
			return nil
		},
	}
}
