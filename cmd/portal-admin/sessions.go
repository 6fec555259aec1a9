package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gurmatacademy/portal/internal/bootstrap"
	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
)

const sessionKeyPattern = "session:*"

type purgeSessionsOptions struct {
	Role   string
	DryRun bool
	Yes    bool
}

type purgeConfirmOptions struct {
	opts purgeSessionsOptions
}

func (p purgeConfirmOptions) IsDryRun() bool { return p.opts.DryRun }
func (p purgeConfirmOptions) IsYes() bool    { return p.opts.Yes }
func (p purgeConfirmOptions) GetWarning() string {
	if p.opts.Role != "" {
		return fmt.Sprintf("WARNING: this will sign out every active %s session.", p.opts.Role)
	}
	return "WARNING: this will delete every active session and sign everyone out."
}
func (p purgeConfirmOptions) GetTarget() string { return "" }

func runListSessions(cmdCtx *commandContext, _ []string) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectSessionRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	cmdCtx.Logger.Info("scanning redis", "pattern", sessionKeyPattern)

	if headerErr := writef(os.Stdout, "\nActive Sessions\n"); headerErr != nil {
		return fmt.Errorf("print session header: %w", headerErr)
	}

	iter := client.Scan(ctx, 0, sessionKeyPattern, 100).Iterator()
	total := 0
	for iter.Next(ctx) {
		key := iter.Val()
		total++
		if printErr := printSession(ctx, client, cmdCtx.Logger, key); printErr != nil {
			return printErr
		}
	}
	if iterErr := iter.Err(); iterErr != nil {
		return fmt.Errorf("redis scan: %w", iterErr)
	}

	if total == 0 {
		if err := writeln(os.Stdout, "(no active sessions)"); err != nil {
			return fmt.Errorf("print session none: %w", err)
		}
		return nil
	}
	if err := writef(os.Stdout, "\nTotal: %d\n", total); err != nil {
		return fmt.Errorf("print session total: %w", err)
	}
	return nil
}

func printSession(
	ctx context.Context,
	client redis.UniversalClient,
	logger *slog.Logger,
	key string,
) error {
	raw, err := client.Get(ctx, key).Result()
	if err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "failed to read session", "key", key, "error", err)
		}
		return writeUnreadableSession(key, err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(raw), &sess); unmarshalErr != nil {
		return writeUnreadableSession(key, unmarshalErr)
	}

	if printErr := writef(os.Stdout, "  %s  %s  %s  expires %s\n",
		sess.ID,
		sess.Email,
		sess.Role,
		sess.ExpiresAt.Format(time.RFC3339),
	); printErr != nil {
		return fmt.Errorf("print session: %w", printErr)
	}
	return nil
}

func writeUnreadableSession(key string, cause error) error {
	if err := writef(os.Stdout, "  %s (unreadable: %v)\n", key, cause); err != nil {
		return fmt.Errorf("print unreadable session: %w", err)
	}
	return nil
}

func runPurgeSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parsePurgeSessionsFlags(args)
	if err != nil {
		return err
	}
	if confirmErr := confirmAction(purgeConfirmOptions{opts}, "purge sessions"); confirmErr != nil {
		return confirmErr
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectSessionRedis(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	cmdCtx.Logger.Info("scanning redis", "pattern", sessionKeyPattern, "dry_run", opts.DryRun)

	deleted, skipped, err := deleteSessions(ctx, client, cmdCtx.Logger, opts)
	if err != nil {
		return err
	}

	cmdCtx.Logger.Info("purge sessions complete",
		"deleted", deleted,
		"skipped", skipped,
		"dry_run", opts.DryRun,
	)
	return nil
}

func deleteSessions(
	ctx context.Context,
	client redis.UniversalClient,
	logger *slog.Logger,
	opts purgeSessionsOptions,
) (int64, int64, error) {
	var deleted, skipped int64

	iter := client.Scan(ctx, 0, sessionKeyPattern, 100).Iterator()
	batch := make([]string, 0, 100)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if opts.DryRun {
			deleted += int64(len(batch))
			if logger != nil {
				logger.Info("dry-run skipping session delete", "count", len(batch))
			}
			batch = batch[:0]
			return
		}
		n, delErr := client.Del(ctx, batch...).Result()
		if delErr != nil {
			if logger != nil {
				logger.Error("failed to delete sessions", "count", len(batch), "error", delErr)
			}
		} else {
			deleted += n
		}
		batch = batch[:0]
	}

	for iter.Next(ctx) {
		key := iter.Val()
		if opts.Role != "" && !sessionMatchesRole(ctx, client, key, opts.Role) {
			skipped++
			continue
		}

		batch = append(batch, key)
		if len(batch) == cap(batch) {
			flush()
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, skipped, fmt.Errorf("redis scan: %w", err)
	}

	flush()
	return deleted, skipped, nil
}

func sessionMatchesRole(ctx context.Context, client redis.UniversalClient, key, role string) bool {
	raw, err := client.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal([]byte(raw), &sess); unmarshalErr != nil {
		return false
	}
	return string(sess.Role) == role
}

func parsePurgeSessionsFlags(args []string) (purgeSessionsOptions, error) {
	fs := flag.NewFlagSet("purge-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts purgeSessionsOptions

	fs.StringVar(&opts.Role, "role", "", "Only purge sessions with this role (admin or student)")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Report what would be deleted without deleting")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return purgeSessionsOptions{}, err
	}

	opts.Role = strings.ToLower(strings.TrimSpace(opts.Role))
	if opts.Role != "" {
		if _, ok := domainauth.ParseRole(opts.Role); !ok {
			return purgeSessionsOptions{}, fmt.Errorf("invalid --role %q (valid options: admin, student)", opts.Role)
		}
	}

	return opts, nil
}

// connectSessionRedis connects to redis using the configured settings.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel support flexible.
func connectSessionRedis(cmdCtx *commandContext) (redis.UniversalClient, error) {
	if cmdCtx.Config.Redis.URI == "" && !cmdCtx.Config.Redis.UseSentinel {
		return nil, errors.New("redis is not configured")
	}
	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}
