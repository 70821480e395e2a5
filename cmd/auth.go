package cmd

import (
	"context"
	"fmt"

	"github.com/witctl/witctl/internal/auth"
	"github.com/witctl/witctl/internal/charm/styles"
	"github.com/witctl/witctl/internal/config"
	"github.com/witctl/witctl/internal/log"
	"github.com/witctl/witctl/internal/model"
	"github.com/witctl/witctl/internal/model/flag"
	"github.com/witctl/witctl/internal/tfs"
)

var authCmd = &model.CommandGroup{
	Usage: "auth",
	Short: "Authenticate the CLI with a Team Foundation Server instance",
	Commands: []model.Command{
		authLoginCmd,
		authLogoutCmd,
		authStatusCmd,
	},
}

type authLoginFlags struct {
	ServerURL   string `json:"server-url"`
	Collection  string `json:"collection"`
	AccessToken string `json:"access-token"`
	Project     string `json:"project"`
}

var authLoginCmd = &model.ExecutableCommand[authLoginFlags]{
	Usage: "login",
	Short: "Authenticate with a server and store the credentials",
	Long:  "Verifies the server URL, collection and personal access token against the server and stores them in ~/.witctl/config.yaml.",
	Run:   runAuthLogin,
	Flags: []flag.Flag{
		flag.StringFlag{
			Name:        "server-url",
			Shorthand:   "s",
			Description: "the base URL of the server, e.g. https://tfs.example.com/tfs",
			Required:    true,
		},
		flag.StringFlag{
			Name:         "collection",
			Shorthand:    "c",
			Description:  "the project collection to connect to",
			DefaultValue: "DefaultCollection",
		},
		flag.StringFlag{
			Name:        "access-token",
			Shorthand:   "t",
			Description: "a personal access token for the server",
			Required:    true,
		},
		flag.StringFlag{
			Name:        "project",
			Shorthand:   "p",
			Description: "the team project to use when commands omit --project",
		},
	},
}

func runAuthLogin(ctx context.Context, flags authLoginFlags) error {
	if err := auth.Login(ctx, flags.ServerURL, flags.Collection, flags.AccessToken); err != nil {
		return err
	}

	if flags.Project != "" {
		return config.SetDefaultProject(flags.Project)
	}

	return nil
}

type authLogoutFlags struct{}

var authLogoutCmd = &model.ExecutableCommand[authLogoutFlags]{
	Usage: "logout",
	Short: "Remove the stored credentials",
	Run: func(ctx context.Context, _ authLogoutFlags) error {
		return auth.Logout(ctx)
	},
}

type authStatusFlags struct{}

var authStatusCmd = &model.ExecutableCommand[authStatusFlags]{
	Usage:        "status",
	Short:        "Review the connection to the configured collection",
	Run:          runAuthStatus,
	RequiresAuth: true,
}

func runAuthStatus(ctx context.Context, _ authStatusFlags) error {
	client := tfs.FromContext(ctx)

	projects, err := client.Projects(ctx)
	if err != nil {
		return err
	}

	msg := styles.RenderSuccessMessage(
		fmt.Sprintf("Connected to %s", client.CollectionURL()),
		fmt.Sprintf("Projects visible: %d", len(projects)),
		fmt.Sprintf("Default project: %s", defaultOrNone(config.GetDefaultProject())),
	)
	log.From(ctx).Println(msg)

	return nil
}

func defaultOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
