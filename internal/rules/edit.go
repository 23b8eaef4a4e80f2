package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joseph-ayodele/docsorter/constants"
	"github.com/joseph-ayodele/docsorter/internal/common"
)

// NewGroup builds a group from editor input; blank keyword lines are dropped
// and the rest trimmed.
func NewGroup(name, typ string, keywords []string) (Group, error) {
	kws := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			kws = append(kws, k)
		}
	}
	g := Group{Name: strings.TrimSpace(name), Type: strings.TrimSpace(typ), Keywords: kws}

	err := common.NewValidator().
		Field("name", g.Name, common.Required, common.MaxLength(255)).
		Field("type", g.Type, common.Required, common.NoneOf(constants.FilenameIllegalChars)).
		Err(common.CodeRules)
	if err != nil {
		return Group{}, err
	}
	return g, nil
}

// Add appends g to the rule file, giving it the lowest priority.
func (s *Store) Add(g Group) error {
	groups, err := s.loadForEdit()
	if err != nil {
		return err
	}
	return s.Save(append(groups, g))
}

// Replace overwrites the group at index.
func (s *Store) Replace(index int, g Group) error {
	groups, err := s.loadForEdit()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(groups) {
		return common.NewAppError(common.CodeRules, fmt.Sprintf("no group at index %d", index), common.ErrNotFound)
	}
	groups[index] = g
	return s.Save(groups)
}

// Remove deletes the group at index and returns it.
func (s *Store) Remove(index int) (Group, error) {
	groups, err := s.loadForEdit()
	if err != nil {
		return Group{}, err
	}
	if index < 0 || index >= len(groups) {
		return Group{}, common.NewAppError(common.CodeRules, fmt.Sprintf("no group at index %d", index), common.ErrNotFound)
	}
	removed := groups[index]
	groups = append(groups[:index], groups[index+1:]...)
	return removed, s.Save(groups)
}

// loadForEdit starts from an empty rule set when the file does not exist yet,
// as the editor does on first use.
func (s *Store) loadForEdit() ([]Group, error) {
	groups, err := s.Load()
	if err == nil {
		return groups, nil
	}
	if isNotExist(err) {
		return []Group{}, nil
	}
	return nil, err
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
