package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/mithra009/Secrets-Beyond-Sight/pkg/experiment"
	"github.com/mithra009/Secrets-Beyond-Sight/pkg/filehandler"
	"github.com/mithra009/Secrets-Beyond-Sight/pkg/steganalysis"
	"github.com/mithra009/Secrets-Beyond-Sight/pkg/stego"
	"github.com/mithra009/Secrets-Beyond-Sight/pkg/synth"
)

var (
	// Color printers
	infoColor    = color.New(color.FgBlue).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
)

func printInfo(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", infoColor("[*]"), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successColor("[+]"), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", warningColor("[!]"), fmt.Sprintf(format, args...))
}

func fatal(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", errorColor("[-]"), fmt.Sprintf(format, args...))
	os.Exit(1)
}

func usage() {
	fmt.Println("Secrets Beyond Sight - differential-privacy calibrated LSB steganography")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sbs embed      -cover <img> -out <png> -message <text> -password <pw> [-epsilon 0.5]")
	fmt.Println("  sbs extract    -stego <png> -password <pw> -bits <n>")
	fmt.Println("  sbs capacity   -file <img>")
	fmt.Println("  sbs analyze    -file <img> [-channel all|red|green|blue] [-perchannel]")
	fmt.Println("  sbs compare    -cover <img> -stego <img>")
	fmt.Println("  sbs synth      -out <png> [-width 512] [-height 512] [-seed 42]")
	fmt.Println("  sbs experiment -dir <covers> -message <text> -password <pw> [-epsilons 0.1,0.5,1.0,5.0] [-out results.csv] [-workers N]")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "embed":
		cmdEmbed(os.Args[2:])
	case "extract":
		cmdExtract(os.Args[2:])
	case "capacity":
		cmdCapacity(os.Args[2:])
	case "analyze":
		cmdAnalyze(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	case "synth":
		cmdSynth(os.Args[2:])
	case "experiment":
		cmdExperiment(os.Args[2:])
	default:
		usage()
	}
}

func cmdEmbed(args []string) {
	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	coverPath := fs.String("cover", "", "Cover image (png, bmp, or jpg)")
	outPath := fs.String("out", "", "Output stego image (saved as PNG)")
	message := fs.String("message", "", "Message text to hide")
	msgFile := fs.String("msgfile", "", "File whose contents to hide (alternative to -message)")
	password := fs.String("password", "", "Shared secret password")
	epsilon := fs.Float64("epsilon", 0.5, "Privacy parameter (smaller = more padding noise)")
	fs.Parse(args)

	if *coverPath == "" || *outPath == "" || *password == "" {
		fatal("embed requires -cover, -out and -password")
	}
	payload := []byte(*message)
	if *msgFile != "" {
		data, err := os.ReadFile(*msgFile)
		if err != nil {
			fatal("reading message file: %v", err)
		}
		payload = data
	}
	if len(payload) == 0 {
		fatal("nothing to embed: supply -message or -msgfile")
	}

	cover, err := filehandler.LoadImage(*coverPath)
	if err != nil {
		fatal("%v", err)
	}

	printInfo("Embedding %d characters into %s (epsilon=%.2f)", len(payload), cover.Size(), *epsilon)
	stegoImg, plan, err := stego.NewEmbedder().Embed(cover, payload, *password, *epsilon)
	if err != nil {
		fatal("%v", err)
	}

	saved, err := filehandler.SavePNG(*outPath, stegoImg)
	if err != nil {
		fatal("%v", err)
	}

	printSuccess("Stego image written to %s", saved)
	printInfo("Message bits:   %d", plan.MessageBits)
	printInfo("Bits modified:  %d (%d decoys, noise draw %.2f)", plan.TotalBits, plan.DecoyBits(), plan.Noise)
	capacity := cover.Components()
	printInfo("Capacity used:  %.2f%%", float64(plan.TotalBits)/float64(capacity)*100)
	printWarning("Share the password and bit count %d with the receiver over a secure channel", plan.MessageBits)
}

func cmdExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	stegoPath := fs.String("stego", "", "Stego image")
	password := fs.String("password", "", "Shared secret password")
	bits := fs.Int("bits", 0, "Message length in bits (8 per character)")
	fs.Parse(args)

	if *stegoPath == "" || *password == "" || *bits <= 0 {
		fatal("extract requires -stego, -password and -bits")
	}

	img, err := filehandler.LoadImage(*stegoPath)
	if err != nil {
		fatal("%v", err)
	}
	message, err := stego.Extract(img, *password, *bits)
	if err != nil {
		fatal("%v", err)
	}
	printSuccess("Extracted %d characters:", len(message))
	fmt.Println(string(message))
}

func cmdCapacity(args []string) {
	fs := flag.NewFlagSet("capacity", flag.ExitOnError)
	path := fs.String("file", "", "Image to measure")
	fs.Parse(args)
	if *path == "" {
		fatal("capacity requires -file")
	}

	img, err := filehandler.LoadImage(*path)
	if err != nil {
		fatal("%v", err)
	}
	bits, chars := stego.Capacity(img.Width, img.Height, img.Channels)
	printInfo("Dimensions: %s, %d channels", img.Size(), img.Channels)
	printSuccess("Capacity: %d bits (%d characters)", bits, chars)
}

func parseChannel(name string) (steganalysis.Channel, error) {
	switch strings.ToLower(name) {
	case "all":
		return steganalysis.ChannelAll, nil
	case "red":
		return steganalysis.ChannelRed, nil
	case "green":
		return steganalysis.ChannelGreen, nil
	case "blue":
		return steganalysis.ChannelBlue, nil
	}
	return 0, fmt.Errorf("unknown channel %q", name)
}

func printReport(r *steganalysis.DetectionReport) {
	printInfo("Channel %s: %d bits, %.2f%% zeros / %.2f%% ones",
		r.Channel, r.TotalBits, r.ZeroPercent, r.OnePercent)
	printInfo("  chi-square=%.4f  p=%.6f  deviation=%.4f%%", r.ChiSquare, r.PValue, r.Deviation)
	if r.Verdict == steganalysis.VerdictNonRandom {
		printWarning("  %s (normal for natural photos; compare against the cover to judge embedding)", r.Verdict)
	} else {
		printSuccess("  %s", r.Verdict)
	}
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	path := fs.String("file", "", "Image to analyze")
	channelName := fs.String("channel", "all", "Channel to test: all, red, green, blue")
	perChannel := fs.Bool("perchannel", false, "Run the test on each channel independently")
	fs.Parse(args)
	if *path == "" {
		fatal("analyze requires -file")
	}

	img, err := filehandler.LoadImage(*path)
	if err != nil {
		fatal("%v", err)
	}

	if *perChannel {
		reports, err := steganalysis.PerChannel(img)
		if err != nil {
			fatal("%v", err)
		}
		for _, r := range reports {
			printReport(r)
		}
		return
	}

	channel, err := parseChannel(*channelName)
	if err != nil {
		fatal("%v", err)
	}
	report, err := steganalysis.ChiSquare(img, channel)
	if err != nil {
		fatal("%v", err)
	}
	printReport(report)
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	coverPath := fs.String("cover", "", "Original cover image")
	stegoPath := fs.String("stego", "", "Suspected stego image")
	fs.Parse(args)
	if *coverPath == "" || *stegoPath == "" {
		fatal("compare requires -cover and -stego")
	}

	cover, err := filehandler.LoadImage(*coverPath)
	if err != nil {
		fatal("%v", err)
	}
	suspect, err := filehandler.LoadImage(*stegoPath)
	if err != nil {
		fatal("%v", err)
	}

	report, err := steganalysis.Compare(cover, suspect)
	if err != nil {
		fatal("%v", err)
	}

	printInfo("Cover deviation: %.4f%%  stego deviation: %.4f%%",
		report.Cover.Deviation, report.Stego.Deviation)
	printSuccess("Deviation change: %.4f%% (%s concealment)",
		report.DeviationChange, steganalysis.EffectivenessRating(report.DeviationChange))
	if report.MSE == 0 {
		printInfo("MSE: 0  PSNR: infinite (images identical)")
	} else {
		printInfo("MSE: %.6f  PSNR: %.2f dB", report.MSE, report.PSNR)
	}
}

func cmdSynth(args []string) {
	fs := flag.NewFlagSet("synth", flag.ExitOnError)
	outPath := fs.String("out", "synthetic_random.png", "Output PNG path")
	width := fs.Int("width", 512, "Image width")
	height := fs.Int("height", 512, "Image height")
	seed := fs.Uint64("seed", 42, "Generator seed (same seed, same image)")
	fs.Parse(args)

	img, err := synth.RandomImage(*width, *height, *seed)
	if err != nil {
		fatal("%v", err)
	}
	saved, err := filehandler.SavePNG(*outPath, img)
	if err != nil {
		fatal("%v", err)
	}
	printSuccess("Wrote %dx%d random-LSB image to %s", *width, *height, saved)
}

func cmdExperiment(args []string) {
	fs := flag.NewFlagSet("experiment", flag.ExitOnError)
	dir := fs.String("dir", "", "Directory of cover images (png/bmp/jpg)")
	message := fs.String("message", "", "Message to embed in every trial")
	password := fs.String("password", "experiment", "Password for the calibrated embedder")
	epsilons := fs.String("epsilons", "0.1,0.5,1.0,5.0", "Comma-separated epsilon values")
	outPath := fs.String("out", "", "CSV output path (default: stdout)")
	workers := fs.Int("workers", 0, "Worker count (default: one per CPU)")
	fs.Parse(args)

	if *dir == "" || *message == "" {
		fatal("experiment requires -dir and -message")
	}

	var epsValues []float64
	for _, field := range strings.Split(*epsilons, ",") {
		eps, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			fatal("bad epsilon %q: %v", field, err)
		}
		epsValues = append(epsValues, eps)
	}

	paths, err := filehandler.GatherCovers(*dir)
	if err != nil {
		fatal("%v", err)
	}

	var tasks []experiment.Task
	for _, path := range paths {
		cover, err := filehandler.LoadImage(path)
		if err != nil {
			printWarning("skipping %s: %v", path, err)
			continue
		}
		for _, eps := range epsValues {
			tasks = append(tasks, experiment.Task{
				ImageID:  fmt.Sprintf("%s@eps=%g", filepath.Base(path), eps),
				Cover:    cover,
				Message:  []byte(*message),
				Password: *password,
				Epsilon:  eps,
			})
		}
	}
	if len(tasks) == 0 {
		fatal("no usable cover images in %s", *dir)
	}

	printInfo("Running %d trials", len(tasks))
	runner := experiment.Runner{Workers: *workers}
	records, err := runner.Run(tasks)
	if err != nil {
		fatal("%v", err)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatal("%v", err)
		}
		defer f.Close()
		out = f
	}
	if err := experiment.WriteCSV(out, records); err != nil {
		fatal("writing results: %v", err)
	}
	if *outPath != "" {
		printSuccess("Results written to %s", *outPath)
	}
}
