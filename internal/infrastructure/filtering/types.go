package filtering

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// DefaultIdentifier is the identifier panes look up when none is configured.
const DefaultIdentifier = "filter"

// ActionType is the effect of a matching content-blocker rule.
type ActionType string

const (
	ActionBlock               ActionType = "block"
	ActionBlockCookies        ActionType = "block-cookies"
	ActionCSSDisplayNone      ActionType = "css-display-none"
	ActionIgnorePreviousRules ActionType = "ignore-previous-rules"
)

func (a ActionType) valid() bool {
	switch a {
	case ActionBlock, ActionBlockCookies, ActionCSSDisplayNone, ActionIgnorePreviousRules:
		return true
	}
	return false
}

// Trigger selects the requests a rule applies to.
type Trigger struct {
	URLFilter    string   `json:"url-filter"`
	ResourceType []string `json:"resource-type,omitempty"`
	IfDomain     []string `json:"if-domain,omitempty"`
	UnlessDomain []string `json:"unless-domain,omitempty"`
}

// Action is what happens when a trigger matches.
type Action struct {
	Type     ActionType `json:"type"`
	Selector string     `json:"selector,omitempty"`
}

// Rule is one entry of a Safari content-blocker rule list.
type Rule struct {
	Trigger Trigger `json:"trigger"`
	Action  Action  `json:"action"`
}

var (
	errEmptyURLFilter   = errors.New("trigger url-filter is empty")
	errMissingSelector  = errors.New("css-display-none action requires a selector")
	errConflictingScope = errors.New("if-domain and unless-domain are mutually exclusive")
)

// Validate checks that the rule can be compiled.
func (r Rule) Validate() error {
	if r.Trigger.URLFilter == "" {
		return errEmptyURLFilter
	}
	if _, err := regexp.Compile(r.Trigger.URLFilter); err != nil {
		return fmt.Errorf("invalid url-filter %q: %w", r.Trigger.URLFilter, err)
	}
	if len(r.Trigger.IfDomain) > 0 && len(r.Trigger.UnlessDomain) > 0 {
		return errConflictingScope
	}
	if !r.Action.Type.valid() {
		return fmt.Errorf("unknown action type %q", r.Action.Type)
	}
	if r.Action.Type == ActionCSSDisplayNone && r.Action.Selector == "" {
		return errMissingSelector
	}
	return nil
}

// CompiledFilter is a validated rule list stored under an identifier.
type CompiledFilter struct {
	ID         string    `json:"identifier"`
	Rules      []Rule    `json:"rules"`
	CompiledAt time.Time `json:"compiled_at"`
}

func (f *CompiledFilter) Identifier() string { return f.ID }

func (f *CompiledFilter) RuleCount() int { return len(f.Rules) }
