package console

import (
	"fmt"
	"io"
	"os"

	"github.com/WangWilly/xSmoke/pkgs/commonpkg/services"
	"github.com/gookit/color"
)

////////////////////////////////////////////////////////////////////////////////

const (
	BANNER_COMPLETED = "\n✅ Twitter test completed successfully!"
	BANNER_ABORTED   = "❌ Error during Twitter actions:"
)

var stepIcons = map[services.Step]string{
	services.StepLoadToken: "🔑",
	services.StepIdentify:  "🙋",
	services.StepPost:      "✅",
	services.StepLike:      "❤️",
	services.StepReply:     "💬",
	services.StepQuote:     "🔁",
	services.StepSearch:    "🔍",
	services.StepMentions:  "🔔",
	services.StepMetrics:   "📊",
	services.StepLookup:    "🔎",
}

// Printer writes the progress of a smoke run for a human operator
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out}
}

var _ services.Reporter = (*Printer)(nil)

////////////////////////////////////////////////////////////////////////////////

func (p *Printer) TokenLoaded(masked string) {
	fmt.Fprintf(p.out, "%s Token loaded: %s\n", stepIcons[services.StepLoadToken], color.FgGray.Render(masked))
}

func (p *Printer) StepOK(step services.Step, line string) {
	fmt.Fprintf(p.out, "%s %s\n", stepIcons[step], line)
}

func (p *Printer) StepItem(step services.Step, index int, line string) {
	fmt.Fprintf(p.out, "  %d. %s\n", index, color.FgLightBlue.Render(line))
}

func (p *Printer) StepFailed(step services.Step, kind services.ErrorKind, err error) {
	fmt.Fprintf(p.out, "⚠️ %s failed [%s]: %s\n",
		step.Title(),
		color.FgYellow.Render(kind.String()),
		err,
	)
}

func (p *Printer) Completed() {
	fmt.Fprintln(p.out, color.FgGreen.Render(BANNER_COMPLETED))
}

func (p *Printer) Aborted(err error, trace string) {
	fmt.Fprintln(p.out, color.FgRed.Render(BANNER_ABORTED), err)
	if trace != "" {
		fmt.Fprintln(p.out, trace)
	}
}
