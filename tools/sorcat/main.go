package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/raulk/clock"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"soread/lib/rtype"
	"soread/sor"
)

type sorcatArgs struct {
	File       string `arg:"--file,env:SOR_FILE,required" help:"path of the SoR file"`
	Column     int    `arg:"--column,env:SOR_COLUMN" default:"0" help:"column index"`
	Row        int    `arg:"--row,env:SOR_ROW" default:"0" help:"row offset within the window"`
	Start      int64  `arg:"--start,env:SOR_START" default:"0" help:"window start byte"`
	Length     int64  `arg:"--length,env:SOR_LENGTH" default:"0" help:"window length in bytes, 0 for unbounded"`
	ShowType   bool   `arg:"--show-type" help:"print the column's inferred type instead of a value"`
	ShowSchema bool   `arg:"--show-schema" help:"print the whole inferred schema"`
	Dev        bool   `arg:"--dev" help:"use development logging"`
}

func main() {
	var flags sorcatArgs
	arg.MustParse(&flags)

	logger, err := buildLogger(flags.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to construct logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	clk := clock.New()
	begin := clk.Now()

	window := sor.Window{Start: flags.Start}
	if flags.Length > 0 {
		window.Length = mo.Some(flags.Length)
	}

	r, err := sor.Open(flags.File, window)
	if err != nil {
		logger.Fatal("failed to open file", zap.String("file", flags.File), zap.Error(err))
	}
	defer r.Close()

	out, err := run(r, flags)
	if err != nil {
		logger.Fatal("query failed",
			zap.Int("column", flags.Column), zap.Int("row", flags.Row), zap.Error(err))
	}
	logger.Debug("query done", zap.Duration("elapsed", clk.Now().Sub(begin)))
	fmt.Println(out)
}

func run(r *sor.Reader, flags sorcatArgs) (string, error) {
	switch {
	case flags.ShowSchema:
		names := lo.Map(r.Schema(), func(rk rtype.Rank, _ int) string { return rk.String() })
		return strings.Join(names, " "), nil
	case flags.ShowType:
		rank, err := r.ColumnType(flags.Column)
		if err != nil {
			return "", err
		}
		return rank.String(), nil
	default:
		return r.Value(flags.Column, flags.Row)
	}
}

func buildLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return config.Build()
}
