package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nxtprof/nxtprof/pkg/domain/types"
	"github.com/nxtprof/nxtprof/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("NXTPROF_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("NXTPROF_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"dryRun", dryRun)

			client, err := fireconf.New(ctx, projectID, databaseID, getIndexConfig(),
				fireconf.WithLogger(logger),
				fireconf.WithDryRun(dryRun),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
			} else {
				logger.Info("Applying migrations")
			}

			if err := client.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply migrations")
			}

			logger.Info("Migration completed", "dryRun", dryRun)
			return nil
		},
	}
}

// getIndexConfig returns the Firestore index configuration
func getIndexConfig() *fireconf.Config {
	collections := []fireconf.Collection{
		{
			Name: "learning_points",
			Indexes: []fireconf.Index{
				// ListLockedBySession / LockBySession: sessionId ASC, editable ASC
				{
					Fields: []fireconf.IndexField{
						{Path: "sessionId", Order: fireconf.OrderAscending},
						{Path: "editable", Order: fireconf.OrderAscending},
					},
				},
				// ListByUser: userId ASC, createdAt DESC
				{
					Fields: []fireconf.IndexField{
						{Path: "userId", Order: fireconf.OrderAscending},
						{Path: "createdAt", Order: fireconf.OrderDescending},
					},
				},
			},
		},
		{
			Name: "givenPeerFeedback",
			Indexes: []fireconf.Index{
				// ListByRecipient: recipientUid ASC, createdAt DESC
				{
					Fields: []fireconf.IndexField{
						{Path: "recipientUid", Order: fireconf.OrderAscending},
						{Path: "createdAt", Order: fireconf.OrderDescending},
					},
				},
				// ListByGiver: giverUid ASC, createdAt DESC
				{
					Fields: []fireconf.IndexField{
						{Path: "giverUid", Order: fireconf.OrderAscending},
						{Path: "createdAt", Order: fireconf.OrderDescending},
					},
				},
			},
		},
	}

	// ListUnsynced: status ASC, synced ASC on each session collection
	for _, sessionType := range types.AllSessionTypes() {
		collections = append(collections, fireconf.Collection{
			Name: sessionType.SessionCollection(),
			Indexes: []fireconf.Index{
				{
					Fields: []fireconf.IndexField{
						{Path: "status", Order: fireconf.OrderAscending},
						{Path: "synced", Order: fireconf.OrderAscending},
					},
				},
			},
		})
	}

	return &fireconf.Config{Collections: collections}
}
