package main

import (
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/MahmoudHassan77/toolzy-sub001/editor"
)

var args struct {
	Output  string  `short:"o" default:"marked.pdf" help:"Path of the baked output PDF"`
	Scale   float64 `short:"s" default:"1" help:"Display scale the script coordinates are expressed at"`
	Verbose bool    `short:"v" help:"Log progress"`

	InputPDF string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
	Script   string `arg:"" name:"script" help:"Path to markup script (JSON)" type:"path"`
}

func endIfErr(e error) {
	if e != nil {
		eLog := log.New(os.Stderr, "", 0)
		eLog.Fatalln(e)
	}
}

func main() {
	kong.Parse(&args)

	logger := logrus.New()
	if !args.Verbose {
		logger.SetLevel(logrus.WarnLevel)
	}

	pdf, err := os.ReadFile(args.InputPDF)
	endIfErr(err)

	script, err := loadScript(args.Script)
	endIfErr(err)

	scale := args.Scale
	if script.Scale > 0 {
		scale = script.Scale
	}

	sig := &fileSignatureSource{}
	ed, err := editor.Load(pdf, sig, editor.WithScale(scale), editor.WithLogger(logger))
	endIfErr(err)
	defer ed.Close()

	logger.Infof("loaded %s: %d pages", args.InputPDF, ed.PageCount())

	endIfErr(script.apply(ed, sig))

	res, err := ed.Export()
	endIfErr(err)

	logger.Infof("baked %d annotations (%d skipped)", res.Baked, res.Skipped)

	endIfErr(os.WriteFile(args.Output, res.PDF, 0644))
	logger.Infof("wrote %s", args.Output)
}
