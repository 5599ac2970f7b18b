package usecase

import (
	"fmt"

	"github.com/taskrevolution/ttr/internal/entity"
)

// AlreadyInitializedError is returned by Init when config.yaml already
// exists and --force was not given (§4.E "init").
type AlreadyInitializedError struct{ Root string }

func (e *AlreadyInitializedError) Error() string {
	return fmt.Sprintf("workspace at %s is already initialized (use --force to overwrite)", e.Root)
}

// InitInput carries an `init` request.
type InitInput struct {
	ManagerName  string
	ManagerEmail string
	CreatedBy    string
	Force        bool
}

// Init creates the workspace's Config manifest, failing if one already
// exists unless Force is set.
func (e Env) Init(in InitInput) (*entity.Config, error) {
	if e.Reg.Config.Exists() && !in.Force {
		return nil, &AlreadyInitializedError{Root: e.Reg.WS.Root}
	}
	cfg := entity.NewConfig(in.ManagerName, in.ManagerEmail, in.CreatedBy, e.Clock.Now())
	if err := e.Reg.Config.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
