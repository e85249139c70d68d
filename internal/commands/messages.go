package commands

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-docnav/pkg/interfaces"
)

const (
	buildSidebarMessageType = "docnav.navigation.build_sidebar"
	relocateMessageType     = "docnav.relocation.relocate"
)

// BuildSidebarCommand regenerates the navigation document.
type BuildSidebarCommand struct {
	// Sections limits the sidebar to these content sections; empty means
	// every configured section.
	Sections []string `json:"sections,omitempty"`
	// Write persists the result through the configured output writer.
	Write bool `json:"write,omitempty"`
}

// Type implements command.Message.
func (BuildSidebarCommand) Type() string { return buildSidebarMessageType }

// Validate rejects blank sections and sections that climb out of the content root.
func (cmd BuildSidebarCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Sections, validation.Each(validation.By(func(value any) error {
			section, _ := value.(string)
			section = strings.Trim(strings.TrimSpace(section), "/")
			if section == "" {
				return validation.NewError("docnav.navigation.build_sidebar.section_required", "section cannot be blank")
			}
			if strings.Contains(section, "..") {
				return validation.NewError("docnav.navigation.build_sidebar.section_invalid", "section must stay inside the content root")
			}
			return nil
		}))),
	)
}

// RelocateCommand moves staged documents into the content tree.
type RelocateCommand struct {
	// StagingDir overrides the configured staging directory.
	StagingDir string `json:"staging_dir,omitempty"`
	// DryRun reports planned moves without touching the filesystem.
	DryRun bool `json:"dry_run,omitempty"`
	// Strict turns per-file failures into a command error.
	Strict bool `json:"strict,omitempty"`
	// ResultCallback receives the batch result, including partial results
	// from cancelled runs.
	ResultCallback func(interfaces.RelocationResult) `json:"-"`
}

// Type implements command.Message.
func (RelocateCommand) Type() string { return relocateMessageType }

// Validate rejects whitespace-only staging overrides.
func (cmd RelocateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.StagingDir, validation.By(func(value any) error {
			dir, _ := value.(string)
			if dir != "" && strings.TrimSpace(dir) == "" {
				return validation.NewError("docnav.relocation.relocate.staging_dir_blank", "staging directory cannot be blank")
			}
			return nil
		})),
	)
}
