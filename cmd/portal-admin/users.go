package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gurmatacademy/portal/internal/adapters/passwordauth"
	"github.com/gurmatacademy/portal/internal/data"
	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	"github.com/gurmatacademy/portal/internal/domain/model"
)

const defaultUserCommandTimeout = 30 * time.Second

type addUserOptions struct {
	Email     string
	Name      string
	Role      domainauth.Role
	StudentID string
	Password  string
}

type listUsersOptions struct {
	Limit  int
	Offset int
}

func runAddUser(cmdCtx *commandContext, args []string) error {
	opts, err := parseAddUserFlags(args)
	if err != nil {
		return err
	}

	password := opts.Password
	if password == "" {
		password, err = promptPassword()
		if err != nil {
			return err
		}
	}

	hash, err := passwordauth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return withDatabase(cmdCtx, defaultUserCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		req := &model.CreateUserRequest{
			Email: opts.Email,
			Name:  opts.Name,
			Role:  opts.Role,
		}
		if opts.StudentID != "" {
			req.StudentID = &opts.StudentID
		}

		user, err := data.NewUserRepo(db).Create(ctx, req, hash)
		if err != nil {
			if errors.Is(err, data.ErrUserEmailExists) {
				return fmt.Errorf("account %q already exists", opts.Email)
			}
			return fmt.Errorf("create user: %w", err)
		}

		cmdCtx.Logger.Info("account created",
			"id", user.ID,
			"email", user.Email,
			"role", user.Role,
		)
		return nil
	})
}

func runListUsers(cmdCtx *commandContext, args []string) error {
	opts, err := parseListUsersFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultUserCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		users, err := data.NewUserRepo(db).List(ctx, opts.Limit, opts.Offset)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return renderUserTable(os.Stdout, users)
	})
}

func renderUserTable(w io.Writer, users []*model.User) error {
	if len(users) == 0 {
		return writeln(w, "(no accounts found)")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tEMAIL\tNAME\tROLE\tSTUDENT ID\tCREATED"); err != nil {
		return err
	}
	for _, u := range users {
		studentID := "-"
		if u.StudentID != nil {
			studentID = *u.StudentID
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			u.ID,
			u.Email,
			u.Name,
			u.Role,
			studentID,
			u.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func parseAddUserFlags(args []string) (addUserOptions, error) {
	fs := flag.NewFlagSet("add-user", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts addUserOptions
	var roleRaw string

	fs.StringVar(&opts.Email, "email", "", "Account email address (required)")
	fs.StringVar(&opts.Name, "name", "", "Display name (required)")
	fs.StringVar(&roleRaw, "role", "student", "Account role: admin or student")
	fs.StringVar(&opts.StudentID, "student-id", "", "Student record id to link (student role)")
	fs.StringVar(&opts.Password, "password", "", "Password; prompted when omitted")

	if err := fs.Parse(args); err != nil {
		return addUserOptions{}, err
	}

	opts.Email = strings.TrimSpace(opts.Email)
	opts.Name = strings.TrimSpace(opts.Name)
	if opts.Email == "" {
		return addUserOptions{}, errors.New("--email is required")
	}
	if opts.Name == "" {
		return addUserOptions{}, errors.New("--name is required")
	}

	role, ok := domainauth.ParseRole(strings.ToLower(strings.TrimSpace(roleRaw)))
	if !ok {
		return addUserOptions{}, fmt.Errorf("invalid --role %q (valid options: admin, student)", roleRaw)
	}
	opts.Role = role

	if opts.Role == domainauth.RoleAdmin && opts.StudentID != "" {
		return addUserOptions{}, errors.New("--student-id cannot be combined with the admin role")
	}

	return opts, nil
}

func parseListUsersFlags(args []string) (listUsersOptions, error) {
	fs := flag.NewFlagSet("list-users", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := listUsersOptions{Limit: 100}

	fs.IntVar(&opts.Limit, "limit", 100, "Maximum number of accounts to list")
	fs.IntVar(&opts.Offset, "offset", 0, "Number of accounts to skip")

	if err := fs.Parse(args); err != nil {
		return listUsersOptions{}, err
	}

	if opts.Limit <= 0 {
		return listUsersOptions{}, errors.New("--limit must be greater than zero")
	}
	if opts.Offset < 0 {
		return listUsersOptions{}, errors.New("--offset must be >= 0")
	}

	return opts, nil
}

func promptPassword() (string, error) {
	if err := write(os.Stderr, "Password: "); err != nil {
		return "", fmt.Errorf("print password prompt: %w", err)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	return password, nil
}
