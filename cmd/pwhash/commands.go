package main

import (
	"errors"
	"fmt"
	"sort"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hasbyte1/go-pwhash/internal/logger"
)

func (st *state) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "hash",
			Usage:  "Hashes a password and prints the encoded hash",
			Flags:  []cli.Flag{driverFlag, minScoreFlag},
			Action: st.hash,
		},
		{
			Name:      "verify",
			Usage:     "Checks a password against an encoded hash; exits 1 on mismatch",
			ArgsUsage: "hash",
			Action:    st.verify,
		},
		{
			Name:      "needs-rehash",
			Usage:     "Reports whether a verified hash should be replaced",
			ArgsUsage: "hash",
			Action:    st.needsRehash,
		},
		{
			Name:      "info",
			Usage:     "Prints the driver and parameters of an encoded hash",
			ArgsUsage: "hash",
			Action:    st.info,
		},
	}
}

func (st *state) hash(ctx *cli.Context) error {
	h, err := st.hasher(ctx)
	if err != nil {
		return err
	}
	password, err := readPassword(ctx.App.Reader, ctx.App.ErrWriter, "Password: ")
	if err != nil {
		return err
	}
	if minScore := ctx.Int(minScoreFlag.Name); minScore > 0 {
		if score := zxcvbn.PasswordStrength(password, nil).Score; score < minScore {
			st.log.Warn("weak password rejected", zap.Int("score", score), zap.Int("min_score", minScore))
			return fmt.Errorf("%w: score %d, need %d", errWeakPassword, score, minScore)
		}
	}
	hash, err := h.Make(password)
	if err != nil {
		return err
	}
	st.log.Info("password hashed",
		zap.String("driver", string(h.Driver())),
		zap.String("hash", logger.MaskHash(hash)),
	)
	fmt.Fprintln(ctx.App.Writer, hash)
	return nil
}

func (st *state) verify(ctx *cli.Context) error {
	hash, err := hashArg(ctx)
	if err != nil {
		return err
	}
	password, err := readPassword(ctx.App.Reader, ctx.App.ErrWriter, "Password: ")
	if err != nil {
		return err
	}
	ok, err := st.manager.CheckWithDetect(password, hash)
	if err != nil {
		st.log.Warn("unusable hash", zap.String("hash", logger.MaskHash(hash)), zap.Error(err))
		return err
	}
	st.log.Info("password verified", zap.String("hash", logger.MaskHash(hash)), zap.Bool("match", ok))
	if !ok {
		return errMismatch
	}
	fmt.Fprintln(ctx.App.Writer, "ok")
	return nil
}

func (st *state) needsRehash(ctx *cli.Context) error {
	hash, err := hashArg(ctx)
	if err != nil {
		return err
	}
	password, err := readPassword(ctx.App.Reader, ctx.App.ErrWriter, "Password: ")
	if err != nil {
		return err
	}
	needs := st.manager.NeedsRehash(password, hash)
	st.log.Info("rehash checked",
		zap.String("hash", logger.MaskHash(hash)),
		zap.String("default_driver", string(st.manager.DefaultDriver())),
		zap.Bool("needs_rehash", needs),
	)
	fmt.Fprintln(ctx.App.Writer, needs)
	return nil
}

func (st *state) info(ctx *cli.Context) error {
	hash, err := hashArg(ctx)
	if err != nil {
		return err
	}
	info, err := st.manager.InfoWithDetect(hash)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(info.Params))
	for k := range info.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(ctx.App.Writer, "driver=%s\n", info.Driver)
	for _, k := range keys {
		fmt.Fprintf(ctx.App.Writer, "%s=%v\n", k, info.Params[k])
	}
	return nil
}

func hashArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", errors.New("need encoded hash as argument")
	}
	return ctx.Args().Get(0), nil
}
