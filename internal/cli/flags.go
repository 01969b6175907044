package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value that only accepts YYYY-MM-DD.
type dateValue struct{ s string }

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string { return d.s }
func (d *dateValue) Type() string   { return "date" }

func (d *dateValue) Set(s string) error {
	if _, err := domain.ParseDate(s); err != nil {
		return err
	}
	d.s = s
	return nil
}

func dateFlag(fs *pflag.FlagSet, v *dateValue, usage string) {
	fs.Var(v, "date", usage)
}

// resolveUser picks --user, then the configured default, and checks it exists.
func resolveUser(ctx context.Context, cmd *cobra.Command, app *App) (*domain.User, error) {
	id, _ := cmd.Flags().GetString("user")
	if id == "" && app.Config != nil {
		id = app.Config.User
	}
	if id == "" {
		return nil, errors.New("no user selected: pass --user or set SPROUT_USER")
	}
	u, err := app.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return u, err
}
