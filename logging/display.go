package logging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tarn/common"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

func (ce *ConfigError) display() {
	PrintErrorMessage(ce.Kind+" Error", errors.New(ce.Message))
}

// kindNames are the names compile message kinds are displayed with
var kindNames = map[int]string{
	LMKSyntax: "Syntax",
	LMKToken:  "Token",
	LMKName:   "Name",
	LMKImport: "Import",
	LMKTyping: "Type",
	LMKDef:    "Definition",
	LMKConst:  "Constant",
	LMKProp:   "Property",
	LMKUsage:  "Usage",
}

// maxBannerWidth bounds the width of the banner above each compile message
const maxBannerWidth = 60

func (cm *CompileMessage) display() {
	fmt.Print("\n\n")
	cm.displayBanner()
	fmt.Println(cm.Message)

	if cm.Position == nil || cm.Context == nil {
		return
	}

	// sources parsed from memory have no file to show
	lines, err := readLines(cm.Context.FilePath, cm.Position.StartLn, cm.Position.EndLn)
	if err != nil {
		return
	}

	fmt.Println()
	for _, sl := range selectLines(lines, cm.Position) {
		InfoColorFG.Print(sl.number)
		fmt.Println("|  " + sl.text)

		fmt.Print(strings.Repeat(" ", len(sl.number)), "|  ", strings.Repeat(" ", sl.markStart))
		ErrorColorFG.Println(strings.Repeat("^", sl.markEnd-sl.markStart))
	}
	fmt.Println()
}

// displayBanner displays the banner on top of a compile message: its kind
// followed by the module and location it was reported at
func (cm *CompileMessage) displayBanner() {
	label := kindNames[cm.Kind] + " Warning"
	style := WarnStyleBG
	if cm.IsError {
		label = kindNames[cm.Kind] + " Error"
		style = ErrorStyleBG
	}

	location := "<unknown>"
	if cm.Context != nil {
		location = fmt.Sprintf("%s (%s:%s)", cm.Context.ModuleName, cm.Context.FilePath, cm.Position)
	}

	width := pterm.GetTerminalWidth() / 2
	if width > maxBannerWidth {
		width = maxBannerWidth
	}

	dashes := width - len(label) - 4
	if dashes < 1 {
		dashes = 1
	}

	fmt.Print("-- ")
	style.Print(label)
	fmt.Print(" " + strings.Repeat("-", dashes) + " ")
	InfoColorFG.Println(location)
}

const fatalErrorPostlude = `
This is likely a bug in the compiler.`

func displayFatalError(msg string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Fatal Error ")
	ErrorColorFG.Println(msg)
	InfoColorFG.Println(fatalErrorPostlude)
}

// -----------------------------------------------------------------------------

// DisplayCompileHeader displays all the compiler information before starting
// analysis
func DisplayCompileHeader(modName string) {
	fmt.Print("tarn ")
	InfoColorFG.Print("v" + common.TarnVersion)
	fmt.Print(" -- module: ")
	InfoColorFG.Println(modName)
}

// phaseSpinner stores the current phase spinner
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const phaseLabelWidth = len("Resolving...") + 2

// phaseLabel pads a phase name so the phase results line up
func phaseLabel(phase string) string {
	if len(phase) >= phaseLabelWidth {
		return phase + " "
	}

	return phase + strings.Repeat(" ", phaseLabelWidth-len(phase))
}

// BeginPhase displays the beginning of a compilation phase
func BeginPhase(phase string) {
	if logger.LogLevel < LogLevelVerbose {
		return
	}

	currentPhase = phase
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: SuccessStyleBG, Text: "Done"},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: ErrorStyleBG, Text: "Fail"},
	}

	phaseSpinner.Start(phaseLabel(phase + "..."))
	phaseStartTime = time.Now()
}

// EndPhase displays the end of a compilation phase
func EndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}

	if success {
		phaseSpinner.Success(phaseLabel(currentPhase), fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()))
	} else {
		phaseSpinner.Fail(phaseLabel(currentPhase))
	}

	phaseSpinner = nil
}

// displayCompilationFinished displays a compilation finished message
func displayCompilationFinished(success bool, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")
	printCount(errorCount, "error", ErrorColorFG)
	fmt.Print(", ")
	printCount(warningCount, "warning", WarnColorFG)
	fmt.Println(")")
}

// printCount prints a count of things coloured if it is not zero
func printCount(n int, noun string, color pterm.Color) {
	if n == 0 {
		color = SuccessColorFG
	}

	color.Print(n)
	if n == 1 {
		fmt.Print(" " + noun)
	} else {
		fmt.Print(" " + noun + "s")
	}
}
