// Package console implements the interactive menu that drives a ledger
// from a terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"votingsystem/internal/domain"
)

// Ledger is the set of operations the shell drives
type Ledger interface {
	RegisterCandidate(name string) error
	ListCandidateNames() []string
	CastVote(voterID, voterName, candidateName string) error
	ComputeResults() ([]domain.Tally, error)
	ListVoters() ([]domain.Voter, error)
}

// Menu choices
const (
	ChoiceRegisterCandidate = iota + 1
	ChoiceDisplayCandidates
	ChoiceCastVote
	ChoiceDisplayResults
	ChoiceVoterDetails
	ChoiceExit
)

var menuItems = []string{
	"Register Candidate",
	"Display Candidates",
	"Cast Vote",
	"Display Results",
	"Show Voter Details",
	"Exit",
}

// Shell reads commands line by line and renders outcomes
type Shell struct {
	ledger  Ledger
	scanner *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
}

// NewShell creates a shell reading from in and writing to out
func NewShell(ledger Ledger, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{
		ledger:  ledger,
		scanner: bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run loops over the menu until the user exits, input ends, or ctx is
// cancelled. Reaching the end of input is a normal exit.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		line, ok := s.prompt("Enter your choice: ")
		if !ok {
			return s.scanner.Err()
		}

		choice, err := ParseMenuChoice(line)
		if err != nil {
			s.error("Invalid input! Please enter a number.")
			continue
		}

		switch choice {
		case ChoiceRegisterCandidate:
			if !s.registerCandidate() {
				return s.scanner.Err()
			}
		case ChoiceDisplayCandidates:
			s.displayCandidates()
		case ChoiceCastVote:
			if !s.castVote() {
				return s.scanner.Err()
			}
		case ChoiceDisplayResults:
			s.displayResults()
		case ChoiceVoterDetails:
			s.displayVoters()
		case ChoiceExit:
			s.info("Exiting...")
			return nil
		default:
			s.error("Invalid choice! Please try again.")
		}
	}
}

func (s *Shell) printMenu() {
	pterm.Fprintln(s.out)
	pterm.Fprintln(s.out, pterm.Bold.Sprint("Voting System Menu"))
	for i, item := range menuItems {
		pterm.Fprintln(s.out, strconv.Itoa(i+1)+". "+item)
	}
}

// prompt writes label and reads one line. It returns false when input ends.
func (s *Shell) prompt(label string) (string, bool) {
	pterm.Fprint(s.out, label)
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

func (s *Shell) registerCandidate() bool {
	name, ok := s.prompt("Enter candidate name: ")
	if !ok {
		return false
	}

	switch err := s.ledger.RegisterCandidate(name); {
	case err == nil:
		s.success("Candidate registered successfully!")
	case errors.Is(err, domain.ErrInvalidName):
		s.error("Invalid candidate name!")
	case errors.Is(err, domain.ErrDuplicateCandidate):
		s.error("Candidate already registered!")
	default:
		s.unexpected(err)
	}
	return true
}

func (s *Shell) displayCandidates() {
	names := s.ledger.ListCandidateNames()
	if len(names) == 0 {
		s.warning("No candidates registered!")
		return
	}
	pterm.Fprintln(s.out)
	pterm.Fprintln(s.out, pterm.Bold.Sprint("Registered Candidates:"))
	s.printNumbered(names)
}

func (s *Shell) castVote() bool {
	voterID, ok := s.prompt("Enter voter ID (VXX..): ")
	if !ok {
		return false
	}
	voterName, ok := s.prompt("Enter voter name: ")
	if !ok {
		return false
	}

	names := s.ledger.ListCandidateNames()
	if len(names) == 0 {
		s.warning("No candidates registered! Please register candidates first.")
		return true
	}

	pterm.Fprintln(s.out)
	pterm.Fprintln(s.out, pterm.Bold.Sprint("Available Candidates:"))
	s.printNumbered(names)

	line, ok := s.prompt("Enter candidate number: ")
	if !ok {
		return false
	}
	candidate, err := SelectCandidate(names, line)
	switch {
	case errors.Is(err, ErrNotANumber):
		s.error("Invalid input! Please enter a number.")
		return true
	case errors.Is(err, ErrChoiceOutOfRange):
		s.error("Invalid candidate number!")
		return true
	}

	switch err := s.ledger.CastVote(voterID, voterName, candidate); {
	case err == nil:
		s.success("Vote cast successfully!")
	case errors.Is(err, domain.ErrInvalidVoterIDFormat):
		s.error("Invalid voter ID format!")
	case errors.Is(err, domain.ErrDuplicateVote):
		s.error("This voter ID has already voted!")
	case errors.Is(err, domain.ErrUnknownCandidate):
		s.error("Invalid candidate selection!")
	default:
		s.unexpected(err)
	}
	return true
}

func (s *Shell) displayResults() {
	results, err := s.ledger.ComputeResults()
	if errors.Is(err, domain.ErrEmptyState) {
		s.warning("No candidates registered!")
		return
	}
	if err != nil {
		s.unexpected(err)
		return
	}

	data := pterm.TableData{{"Candidate", "Votes", "Share"}}
	for _, r := range results {
		data = append(data, []string{
			r.Name,
			humanize.Comma(int64(r.VoteCount)),
			r.PercentageString() + "%",
		})
	}

	pterm.Fprintln(s.out)
	pterm.Fprintln(s.out, pterm.Bold.Sprint("Voting Results:"))
	s.renderTable(data)
}

func (s *Shell) displayVoters() {
	voters, err := s.ledger.ListVoters()
	if errors.Is(err, domain.ErrEmptyState) {
		s.warning("No votes cast yet!")
		return
	}
	if err != nil {
		s.unexpected(err)
		return
	}

	data := pterm.TableData{{"Voter ID", "Name"}}
	for _, v := range voters {
		data = append(data, []string{v.ID, v.Name})
	}

	pterm.Fprintln(s.out)
	pterm.Fprintln(s.out, pterm.Bold.Sprintf("Voter Details (%s voters):", humanize.Comma(int64(len(voters)))))
	s.renderTable(data)
}

func (s *Shell) printNumbered(names []string) {
	for i, name := range names {
		pterm.Fprintln(s.out, strconv.Itoa(i+1)+". "+name)
	}
}

func (s *Shell) renderTable(data pterm.TableData) {
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(s.out).Render(); err != nil {
		s.logger.Error("failed to render table", "error", err)
	}
}

func (s *Shell) success(msg string) {
	pterm.Success.WithWriter(s.out).Println(msg)
}

func (s *Shell) info(msg string) {
	pterm.Info.WithWriter(s.out).Println(msg)
}

func (s *Shell) warning(msg string) {
	pterm.Warning.WithWriter(s.out).Println(msg)
}

func (s *Shell) error(msg string) {
	pterm.Error.WithWriter(s.out).Println(msg)
}

func (s *Shell) unexpected(err error) {
	s.logger.Error("ledger operation failed", "error", err)
	s.error("Something went wrong: " + err.Error())
}
