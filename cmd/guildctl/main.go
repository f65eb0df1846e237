// Command guildctl reads and writes WeTEE DAO guilds from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wetee-dao/guildgate/internal/account"
	"github.com/wetee-dao/guildgate/internal/chain"
	"github.com/wetee-dao/guildgate/internal/config"
	"github.com/wetee-dao/guildgate/internal/database"
	"github.com/wetee-dao/guildgate/internal/governance"
	"github.com/wetee-dao/guildgate/internal/repository"
	"github.com/wetee-dao/guildgate/internal/service"
)

var (
	// Global flags
	verbose     bool
	clientIndex int
	endpoints   []string
	timeout     time.Duration

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "guildctl",
	Short: "Inspect and manage WeTEE DAO guilds",
	Long: `guildctl talks to a WeTEE node directly, using the same configuration
as the guildgate server (CHAIN_*, DB_*, KEYSTORE_* environment variables).

Reads need only a node. Writes sign with a dev account or a key imported into
the keystore with "guildctl account import".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if len(endpoints) > 0 {
			cfg.Chain.Endpoints = endpoints
		}
		if cmd.Flags().Changed("client") {
			cfg.Chain.ClientIndex = clientIndex
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().IntVar(&clientIndex, "client", 0, "Pool slot to use (index into the endpoint list)")
	rootCmd.PersistentFlags().StringSliceVar(&endpoints, "endpoint", nil, "Node URL, repeatable (overrides CHAIN_ENDPOINTS)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 3*time.Minute, "Overall command timeout")

	rootCmd.AddCommand(guildsCmd, accountCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// env holds the connections a command opened
type env struct {
	pool     *chain.Pool
	db       *database.SurrealDB
	keystore *account.Keystore
	guilds   *service.GuildService
}

// open builds the keystore, backed by the database when withKeys is set.
func open(ctx context.Context, withKeys bool) (*env, error) {
	e := &env{}

	var keyRepo account.KeyRepository
	if withKeys {
		e.db = database.NewSurrealDB(database.Config{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
		if err := e.db.Connect(ctx); err != nil {
			// Dev accounts still resolve without the database.
			slog.Warn("keystore database unavailable", slog.String("error", err.Error()))
			e.db = nil
		} else {
			if err := database.Migrate(ctx, e.db); err != nil {
				e.close()
				return nil, err
			}
			keyRepo = repository.NewKeystoreRepository(e.db)
		}
	}

	var err error
	e.keystore, err = account.NewKeystore(account.KeystoreConfig{
		Repo:       keyRepo,
		Passphrase: cfg.Keystore.Passphrase,
		SS58Prefix: cfg.Chain.SS58Prefix,
		DevURIs:    cfg.Keystore.DevAccounts,
	})
	if err != nil {
		e.close()
		return nil, err
	}
	return e, nil
}

// dial connects the chain pool and binds the guild service to the chosen slot
func (e *env) dial(ctx context.Context) error {
	pool, err := chain.DialPool(ctx, cfg.Chain.Endpoints)
	if err != nil {
		return err
	}
	if cfg.Chain.ClientIndex < 0 || cfg.Chain.ClientIndex >= pool.Len() {
		pool.Close()
		return fmt.Errorf("%w: %d of %d", chain.ErrClientIndex, cfg.Chain.ClientIndex, pool.Len())
	}

	e.pool = pool
	e.guilds = service.NewGuildService(service.GuildServiceConfig{
		Pool:          pool,
		Keys:          e.keystore,
		Router:        governance.NewRouter(),
		Submissions:   e.submissions(),
		SS58Prefix:    cfg.Chain.SS58Prefix,
		SubmitTimeout: cfg.Chain.SubmitTimeout,
	}).ForClient(cfg.Chain.ClientIndex)
	return nil
}

func (e *env) submissions() service.SubmissionRepository {
	if e.db == nil {
		return nil
	}
	return repository.NewSubmissionRepository(e.db)
}

func (e *env) close() {
	if e.pool != nil {
		e.pool.Close()
	}
	if e.db != nil {
		_ = e.db.Close()
	}
}

// run opens an env, runs fn under the command timeout and closes the env
func run(cmd *cobra.Command, withKeys, withChain bool, fn func(ctx context.Context, e *env) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	e, err := open(ctx, withKeys)
	if err != nil {
		return err
	}
	defer e.close()

	if withChain {
		if err := e.dial(ctx); err != nil {
			return err
		}
	}
	return fn(ctx, e)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
