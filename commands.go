package main

import (
	"context"
	"fmt"
	"strconv"

	"emcmap/api/mapi"
	"emcmap/classes/nations"
	"emcmap/classes/residents"
	"emcmap/classes/towns"
	"emcmap/database"
	"emcmap/shared"
	"emcmap/snapshot"
	"emcmap/utils/requests"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const ARCHIVE_DB_NAME = "archive"

type app struct {
	cfg    appConfig
	replay string // archive id or "latest"
	record bool
	dump   bool

	db      *badger.DB
	archive *database.Archive
}

func newApp(cfg appConfig) *app {
	return &app{cfg: cfg}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "emcmap",
		Short:        "Look up towns, nations and residents on the EarthMC live map",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.cfg.IgnoreCase, "ignore-case", "i", a.cfg.IgnoreCase, "match names regardless of case")
	flags.StringVar(&a.replay, "replay", "", `build from archived feeds instead of the live map (archive id or "latest")`)
	flags.BoolVar(&a.record, "record", false, "archive the fetched feeds so they can be replayed later")
	flags.BoolVar(&a.dump, "dump", false, "print the full resolved value")

	root.AddCommand(
		a.townCmd(),
		a.nationCmd(),
		a.residentCmd(),
		a.linkCmd(),
		a.statusCmd(),
		a.archiveCmd(),
	)

	return root
}

func (a *app) close() {
	if a.archive != nil {
		if err := a.archive.Close(); err != nil {
			log.Printf("Error closing archive: %v", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("Error closing DB: %v", err)
		}
	}
}

func (a *app) openArchive() (*database.Archive, error) {
	if a.archive != nil {
		return a.archive, nil
	}

	db, err := database.Open(a.cfg.DBDir, ARCHIVE_DB_NAME)
	if err != nil {
		return nil, fmt.Errorf("cannot open archive db in %s: %w", a.cfg.DBDir, err)
	}

	arc, err := database.NewArchive(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	a.db, a.archive = db, arc
	return arc, nil
}

func (a *app) fetcher() *mapi.HTTPFetcher {
	return mapi.NewHTTPFetcher(mapi.FetcherOptions{
		MarkersURL: a.cfg.MarkersURL,
		PlayersURL: a.cfg.PlayersURL,
		Timeout:    a.cfg.Timeout,
		ReqPerMin:  a.cfg.ReqPerMin,
	})
}

func (a *app) payloads(ctx context.Context) (mapi.Payloads, error) {
	if a.replay != "" {
		arc, err := a.openArchive()
		if err != nil {
			return mapi.Payloads{}, err
		}

		if a.replay == "latest" {
			id, p, err := arc.Latest()
			log.WithField("id", id).Debug("replaying latest archived feeds")
			return p, err
		}

		return arc.Get(a.replay)
	}

	p, err := mapi.FetchAll(ctx, a.fetcher())
	if err != nil {
		return p, err
	}

	if a.record {
		arc, err := a.openArchive()
		if err != nil {
			return p, err
		}

		id, err := arc.Put(p)
		if err != nil {
			return p, err
		}

		log.Infof("Recorded feeds as %s", id)
	}

	return p, nil
}

func (a *app) snapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	p, err := a.payloads(ctx)
	if err != nil {
		return nil, err
	}

	return snapshot.FromPayloads(p, snapshot.Options{
		IgnoreCase: a.cfg.IgnoreCase,
		Markerset:  a.cfg.Markerset,
	})
}

func (a *app) townCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "town <name>",
		Short: "Show a town's nation, flags and claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			t, err := towns.Get(s, args[0])
			if err != nil {
				return err
			}

			if a.dump {
				return printDump(cmd.OutOrStdout(), t)
			}

			return printTown(cmd.OutOrStdout(), t, a.cfg.MapURL)
		},
	}
}

func (a *app) nationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nation <name>",
		Short: "Show a nation's towns and capital",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			n, err := nations.Get(s, args[0])
			if err != nil {
				return err
			}

			members, err := towns.OfNation(s, n)
			if err != nil {
				return err
			}

			if a.dump {
				return printDump(cmd.OutOrStdout(), members)
			}

			return printNation(cmd.OutOrStdout(), n, members)
		},
	}
}

func (a *app) residentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resident <name>",
		Short: "Show a resident's town, nation and live position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			r := residents.Get(s, args[0])
			if a.dump {
				return printDump(cmd.OutOrStdout(), r)
			}

			return printResident(cmd.OutOrStdout(), r, a.cfg.MapURL)
		},
	}
}

func (a *app) linkCmd() *cobra.Command {
	var zoom uint8

	cmd := &cobra.Command{
		Use:   "link <x> <z>",
		Short: "Print a map link centred on a block position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid x coordinate %q", args[0])
			}

			z, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid z coordinate %q", args[1])
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), shared.MapLink(a.cfg.MapURL, shared.Position{X: x, Z: z}, zoom))
			return err
		},
	}

	cmd.Flags().Uint8VarP(&zoom, "zoom", "z", shared.ZOOM_LEVELS.TOWN, "map zoom level")
	return cmd
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether both map feeds are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			markersURL, playersURL := a.fetcher().URLs()
			for _, url := range []string{markersURL, playersURL} {
				r, err := requests.Head(cmd.Context(), url)
				status, _ := requests.WithResponseStatus(r, err)

				if err := printStatus(cmd.OutOrStdout(), url, status); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func (a *app) archiveCmd() *cobra.Command {
	archive := &cobra.Command{
		Use:   "archive",
		Short: "Manage recorded feeds",
	}

	archive.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded feeds, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := a.openArchive()
			if err != nil {
				return err
			}

			entries, err := arc.List()
			if err != nil {
				return err
			}

			return printArchive(cmd.OutOrStdout(), entries)
		},
	})

	archive.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arc, err := a.openArchive()
			if err != nil {
				return err
			}

			return arc.Delete(args[0])
		},
	})

	return archive
}
