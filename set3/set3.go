// Package set3 solves the Cryptopals set 3 challenges: the CBC padding
// oracle, CTR mode and its nonce reuse, and the MT19937 generator.
package set3

import (
	"context"
	"errors"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// Set is the number of this challenge set.
const Set = 3

var log = cryptopals.NewLogger(cryptopals.ModuleName + "/set3")

var challenges = []struct {
	number int
	run    func(context.Context, *cryptopals.Env) error
}{
	{17, Challenge17},
	{18, Challenge18},
	{19, Challenge19},
	{20, Challenge20},
	{21, Challenge21},
	{22, Challenge22},
	{23, Challenge23},
	{24, Challenge24},
}

// Run solves every challenge of the set in order, or only challenge only
// when it is not zero. A failing challenge is reported on env.Err and the
// next one still runs; the returned error joins every failure.
func Run(ctx context.Context, env *cryptopals.Env, only int) error {
	var errs []error
	ran := false
	for _, c := range challenges {
		if only != 0 && c.number != only {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		ran = true
		log.Debugf("Running challenge %d", c.number)
		if err := c.run(ctx, env); err != nil {
			fmt.Fprintf(env.Err, "An error happened: %v\n", err)
			errs = append(errs, cryptopals.NewChallengeError(Set, c.number, err))
		}
	}
	if !ran {
		return fmt.Errorf("%w: set %d has no challenge %d", cryptopals.ErrInvalidArgument, Set, only)
	}
	return errors.Join(errs...)
}
