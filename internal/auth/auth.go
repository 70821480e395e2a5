package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/witctl/witctl/internal/config"
	"github.com/witctl/witctl/internal/log"
	"github.com/witctl/witctl/internal/tfs"
)

// Authenticate builds a client from the stored credentials, connects it, and
// returns a context carrying it. Commands marked RequiresAuth run through
// here before their Run function sees the context.
func Authenticate(ctx context.Context) (context.Context, error) {
	opts := tfs.Options{
		ServerURL:   config.GetServerURL(),
		Collection:  config.GetCollection(),
		AccessToken: config.GetAccessToken(),
	}

	if opts.ServerURL == "" || opts.AccessToken == "" {
		return ctx, errors.New("not authenticated: run 'witctl auth login' or set WITCTL_ACCESS_TOKEN")
	}

	client := tfs.NewClient(opts)
	if err := client.Connect(ctx); err != nil {
		return ctx, err
	}

	return tfs.With(ctx, client), nil
}

// Login verifies the given credentials against the server and stores them.
func Login(ctx context.Context, serverURL, collection, accessToken string) error {
	client := tfs.NewClient(tfs.Options{
		ServerURL:   serverURL,
		Collection:  collection,
		AccessToken: accessToken,
	})

	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer client.Close()

	if err := config.SetAuthInfo(serverURL, collection, accessToken); err != nil {
		return errors.Wrap(err, "saving credentials")
	}

	log.From(ctx).
		WithInteractiveOnly().
		Successf("Authenticated with %s", client.CollectionURL())

	return nil
}

func Logout(ctx context.Context) error {
	if err := config.ClearAuthInfo(); err != nil {
		return errors.Wrap(err, "removing credentials")
	}

	log.From(ctx).
		WithInteractiveOnly().
		Success("Logout successful!")

	return nil
}
