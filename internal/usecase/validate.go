package usecase

import "github.com/taskrevolution/ttr/internal/validate"

// Validate runs the full rule suite over the whole workspace, reporting
// every severity (§4.E "validate [scope]: run the rule suite").
func (e Env) Validate() (validate.Result, error) {
	world, err := LoadWorld(e.Reg)
	if err != nil {
		return nil, err
	}
	return validate.AllRules(world), nil
}
