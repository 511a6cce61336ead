package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emilianohg/storyboard/internal/config"
	"github.com/emilianohg/storyboard/internal/db"
	"github.com/emilianohg/storyboard/internal/exchange"
	"github.com/emilianohg/storyboard/internal/logging"
	"github.com/emilianohg/storyboard/internal/planner"
	"github.com/emilianohg/storyboard/internal/repository"
	"github.com/emilianohg/storyboard/internal/timeline"
	"github.com/emilianohg/storyboard/internal/tui"
	"github.com/emilianohg/storyboard/internal/tui/screens"
)

var rootCmd = &cobra.Command{
	Use:   "storyboard",
	Short: "Video production planner",
	Long:  `Storyboard plans videos: ideas, scenes, a timeline, shot lists, todos and publishing metadata, saved locally as you edit.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		// Only one interactive session may write to the database
		dbPath, err := config.DatabasePath()
		if err != nil {
			fail("Error resolving database path", err)
		}
		lock, err := db.Lock(dbPath)
		if err != nil {
			fail("Error", err)
		}
		defer lock.Unlock()

		env := openEnv(cfg)
		defer env.close()

		openID, _ := cmd.Flags().GetString("open")
		if first, err := env.bootstrap(context.Background()); err != nil {
			fail("Error creating first project", err)
		} else if first != "" && openID == "" {
			openID = first
		}

		deps := screens.Deps{
			Repo:    env.repo,
			Planner: env.planner,
			Config:  cfg,
			Logger:  env.log,
			Clock:   env.clock,
		}
		if err := tui.Run(deps, openID); err != nil {
			fail("Error", err)
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Run: func(cmd *cobra.Command, args []string) {
		env := openEnv(loadConfig())
		defer env.close()

		projects, err := env.repo.Summaries(context.Background())
		if err != nil {
			fail("Error", err)
		}
		if len(projects) == 0 {
			fmt.Println("No projects yet. Create one with 'storyboard new NAME'.")
			return
		}

		rows := make([][]string, 0, len(projects))
		for _, p := range projects {
			rows = append(rows, []string{
				p.ID,
				p.Name,
				strconv.Itoa(p.IdeaCount),
				strconv.Itoa(p.SceneCount),
				p.UpdatedAt.Local().Format("2006-01-02 15:04"),
			})
		}
		fmt.Println(renderTable([]string{"ID", "Name", "Ideas", "Scenes", "Updated"}, rows, 2, 3))
	},
}

var newCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := openEnv(loadConfig())
		defer env.close()

		desc, _ := cmd.Flags().GetString("description")
		project := env.planner.NewProject(args[0], desc)
		if err := env.repo.Put(context.Background(), project); err != nil {
			fail("Error", err)
		}
		env.log.Info("project created", zap.String("project_id", project.ID))
		fmt.Println(project.ID)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export ID",
	Short: "Export a project as JSON",
	Long: `Export a project as a JSON document.

Without -o the file is written to export_dir, named after the project.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		env := openEnv(cfg)
		defer env.close()

		project, err := env.repo.MustGet(context.Background(), args[0])
		if err != nil {
			fail("Error", err)
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			path, err := exchange.WriteFile(cfg.ExportDir, project)
			if err != nil {
				fail("Error", err)
			}
			fmt.Printf("Exported to %s\n", path)
			return
		}

		data, err := exchange.Export(project)
		if err != nil {
			fail("Error", err)
		}
		if out == "-" {
			os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(out, data, 0644); err != nil {
			fail("Error", err)
		}
		fmt.Printf("Exported to %s\n", out)
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a project from an exported JSON file",
	Long: `Import a project from an exported JSON file and print its id.

A project with the same id is overwritten.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := openEnv(loadConfig())
		defer env.close()

		project, err := exchange.ImportFile(context.Background(), env.repo, args[0])
		if err != nil {
			fail("Error", err)
		}
		env.log.Info("project imported", zap.String("project_id", project.ID), zap.String("path", args[0]))
		fmt.Println(project.ID)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := openEnv(loadConfig())
		defer env.close()

		ctx := context.Background()
		if _, err := env.repo.MustGet(ctx, args[0]); err != nil {
			fail("Error", err)
		}
		if err := env.repo.Delete(ctx, args[0]); err != nil {
			fail("Error", err)
		}
		fmt.Printf("Deleted %s\n", args[0])
	},
}

var shotsCmd = &cobra.Command{
	Use:   "shots ID",
	Short: "Print a project's shot list",
	Long: `Print a project's shot list.

With --generate the list is first rebuilt from the timeline of the given scene,
replacing the existing shots.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env := openEnv(loadConfig())
		defer env.close()

		ctx := context.Background()
		project, err := env.repo.MustGet(ctx, args[0])
		if err != nil {
			fail("Error", err)
		}

		if sceneID, _ := cmd.Flags().GetString("generate"); sceneID != "" {
			if err := planner.RegenerateShotList(project, sceneID); err != nil {
				fail("Error", err)
			}
			if err := env.repo.Put(ctx, project); err != nil {
				fail("Error", err)
			}
		}

		if len(project.ShotList) == 0 {
			fmt.Println("No shots. Generate them with --generate SCENE_ID.")
			return
		}

		shots := planner.SortShots(project.ShotList, planner.SortByTimeline)
		rows := make([][]string, 0, len(shots))
		for _, s := range shots {
			done := ""
			if s.Completed {
				done = "yes"
			}
			rows = append(rows, []string{
				strconv.Itoa(s.Order + 1),
				s.Title,
				s.ShotType.Label(),
				timeline.FormatTime(s.Duration),
				done,
			})
		}
		fmt.Println(renderTable([]string{"#", "Shot", "Type", "Duration", "Done"}, rows, 0, 3))

		completed, total := planner.ShotProgress(shots)
		fmt.Printf("%d/%d done, %s total\n", completed, total, timeline.FormatTime(planner.TotalShotDuration(shots)))
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance",
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the migration version",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.DatabasePath()
		if err != nil {
			fail("Error resolving database path", err)
		}
		database, err := db.Open(path)
		if err != nil {
			fail("Error opening database", err)
		}
		defer database.Close()

		status, err := database.Status()
		if err != nil {
			fail("Error", err)
		}
		fmt.Printf("Database: %s\n", database.Path())
		fmt.Printf("Version:  %d of %d\n", status.CurrentVersion, status.LatestVersion)
		if status.Dirty {
			fmt.Println("State:    dirty (a migration failed part way)")
		} else if status.Pending {
			fmt.Println("State:    migrations pending, run 'storyboard' to apply them")
		} else {
			fmt.Println("State:    up to date")
		}
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		path, _ := config.ConfigPath()
		fmt.Printf("# %s\n", path)
		if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
			fail("Error", err)
		}
		fmt.Printf("\n# resolved\npath_prefix = %q\n", cfg.PathPrefix())
		if delay, err := cfg.Autosave(); err == nil {
			fmt.Printf("autosave = %q\n", delay)
		}
	},
}

func init() {
	rootCmd.Flags().String("open", "", "Open this project id directly")
	newCmd.Flags().StringP("description", "d", "", "Project description")
	exportCmd.Flags().StringP("output", "o", "", "Write to this file ('-' for stdout)")
	shotsCmd.Flags().String("generate", "", "Rebuild the shot list from this scene's timeline")

	dbCmd.AddCommand(dbStatusCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(shotsCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env is what every command that touches projects needs.
type env struct {
	db      *db.DB
	repo    *repository.ProjectRepo
	planner *planner.Planner
	log     *zap.Logger
	clock   clockwork.Clock
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config", err)
	}
	return cfg
}

func openEnv(cfg *config.Config) *env {
	if err := config.EnsureDirectories(); err != nil {
		fail("Error creating data directory", err)
	}

	logPath, err := config.LogPath()
	if err != nil {
		fail("Error resolving log path", err)
	}
	log, err := logging.New(cfg.LogLevel, logPath)
	if err != nil {
		fail("Error opening log", err)
	}

	dbPath, err := config.DatabasePath()
	if err != nil {
		fail("Error resolving database path", err)
	}
	database, err := db.OpenAndMigrate(dbPath)
	if err != nil {
		fail("Error opening database", err)
	}

	clock := clockwork.NewRealClock()
	return &env{
		db:      database,
		repo:    repository.NewProjectRepo(database.DB).WithClock(clock),
		planner: planner.New(clock),
		log:     log,
		clock:   clock,
	}
}

// bootstrap creates the first project on an empty store and returns its
// id, or "" when projects already exist.
func (e *env) bootstrap(ctx context.Context) (string, error) {
	projects, err := e.repo.Summaries(ctx)
	if err != nil {
		return "", err
	}
	if len(projects) > 0 {
		return "", nil
	}

	project := e.planner.NewProject(planner.FirstProjectName, "")
	if err := e.repo.Put(ctx, project); err != nil {
		return "", err
	}
	e.log.Info("created first project", zap.String("project_id", project.ID))
	return project.ID, nil
}

func (e *env) close() {
	_ = e.log.Sync()
	if err := e.db.Close(); err != nil {
		e.log.Warn("close database", zap.Error(err))
	}
}

func fail(prefix string, err error) {
	if errors.Is(err, db.ErrLocked) {
		prefix = "Error"
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
	os.Exit(1)
}
