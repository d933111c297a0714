// Package set1 solves the Cryptopals set 1 challenges: encodings, XOR
// ciphers and their statistical attacks, and AES in ECB mode.
package set1

import (
	"context"
	"errors"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// Set is the number of this challenge set.
const Set = 1

var log = cryptopals.NewLogger(cryptopals.ModuleName + "/set1")

var challenges = []struct {
	number int
	run    func(context.Context, *cryptopals.Env) error
}{
	{1, Challenge1},
	{2, Challenge2},
	{3, Challenge3},
	{4, Challenge4},
	{5, Challenge5},
	{6, Challenge6},
	{7, Challenge7},
	{8, Challenge8},
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
