package ui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"strings"
)

// Severity of a desktop notification, mapped to a notify-send urgency and icon.
// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) urgency() string {
	switch s {
	case SeverityWarning:
		return "normal"
	case SeverityError:
		return "critical"
	default:
		return "low"
	}
}

func (s Severity) icon() string {
	switch s {
	case SeverityWarning:
		return "dialog-warning"
	case SeverityError:
		return "dialog-error"
	default:
		return "dialog-information"
	}
}

func NotifyInfo(title, text string) {
	Notify(SeverityInfo, title, text)
}

func NotifyWarn(title, text string) {
	Notify(SeverityWarning, title, text)
}

func NotifyError(title, text string) {
	Notify(SeverityError, title, text)
}

// Notify shows a desktop notification to the user owning the current display session.
// The daemon usually runs headless on the grow box, so a missing session is only logged.
func Notify(severity Severity, title, text string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Debug("Skipping notification '%s', missing env variable 'DISPLAY'", title)
		return
	}

	owner, err := displayOwner(display)
	if err != nil {
		Warning("Cannot send notification: %v", err)
		return
	}

	cmd := exec.Command("sudo", "-u", owner.Username,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+owner.Uid+"/bus",
		"notify-send",
		"-a", "hydro2go",
		"-u", severity.urgency(),
		"-i", severity.icon(),
		title, text,
	)
	if err := cmd.Run(); err != nil {
		Error("Error sending notification: %v", err)
	}
}

// displayOwner finds the logged-in user attached to the given X display
func displayOwner(display string) (*user.User, error) {
	output, err := exec.Command("who").Output()
	if err != nil {
		return nil, fmt.Errorf("unable to list display sessions: %w", err)
	}

	name := findSessionUser(string(output), display)
	if len(name) <= 0 {
		return nil, errors.New("unable to detect user of current display session")
	}
	return user.Lookup(name)
}

func findSessionUser(whoOutput string, display string) string {
	for _, line := range strings.Split(whoOutput, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(line, display) {
			return fields[0]
		}
	}
	return ""
}
