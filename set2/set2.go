// Package set2 solves the Cryptopals set 2 challenges: block cipher
// modes, PKCS#7 padding and chosen-plaintext attacks on ECB and CBC.
package set2

import (
	"context"
	"errors"
	"fmt"

	"github.com/Farzy/cryptopals"
)

// Set is the number of this challenge set.
const Set = 2

var log = cryptopals.NewLogger(cryptopals.ModuleName + "/set2")

var challenges = []struct {
	number int
	run    func(context.Context, *cryptopals.Env) error
}{
	{9, Challenge9},
	{10, Challenge10},
	{11, Challenge11},
	{12, Challenge12},
	{13, Challenge13},
	{14, Challenge14},
	{15, Challenge15},
	{16, Challenge16},
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
