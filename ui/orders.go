package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/qyinm/craftshelf/order"
	"github.com/qyinm/craftshelf/render"
	"go.uber.org/zap"
)

const requirementWarning = "Please describe your requirement"

// startOrder composes the deep link for the selected card and stages its feedback.
func (m Model) startOrder() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(cardItem)
	if !ok {
		return m, nil
	}
	control := orderControl(item.card.Index)
	switch m.state.control(control) {
	case render.ControlPending, render.ControlConfirmed, render.ControlDisabled:
		return m, nil
	}

	link := m.composer.ProductLink(item.card.Product)
	m.orderID++
	m.SetControlState(control, render.ControlPending)
	m.status = ""
	m.logger.Info("order started",
		zap.Int("order", m.orderID),
		zap.String("product", item.card.ID),
	)
	return m, orderSteps(m.sequence, m.orderID, m.state.generation, item.card.Index, link)
}

// handleOrderStep applies one scheduled stage. Feedback for cards that were
// redrawn since the order started is dropped; the open still happens.
func (m Model) handleOrderStep(msg orderStepMsg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case order.StepConfirmed:
		if msg.generation == m.state.generation {
			m.SetControlState(orderControl(msg.index), render.ControlConfirmed)
		}
	case order.StepOpen:
		m.logger.Debug("opening order link", zap.Int("order", msg.orderID))
		return m, openLink(m.opener, msg.link)
	}
	return m, nil
}

func (m Model) handleLinkOpened(msg linkOpenedMsg) Model {
	if msg.err != nil {
		m.logger.Warn("open link failed", zap.Error(msg.err))
		m.status = fmt.Sprintf("Could not open WhatsApp: %v", msg.err)
		return m
	}
	m.status = "WhatsApp opened"
	return m
}

func validateRequirement(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New(requirementWarning)
	}
	return nil
}

func newCustomForm(value *string, startingPrice string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Custom order").
				Description(fmt.Sprintf("Tell us what you would like made. Custom orders start from %s.", startingPrice)).
				Placeholder("Colours, size, occasion…").
				CharLimit(1000).
				Value(value).
				Validate(validateRequirement),
		),
	).WithTheme(huh.ThemeCharm()).WithWidth(64)
}

func (m Model) openCustomForm() (tea.Model, tea.Cmd) {
	*m.requirement = ""
	m.warning = ""
	m.form = newCustomForm(m.requirement, m.composer.Currency+m.composer.StartingPrice)
	m.overlay = overlayCustom
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
		switch m.form.State {
		case huh.StateCompleted:
			m.form = nil
			m.overlay = overlayNone
			return m.submitCustom(*m.requirement)
		case huh.StateAborted:
			m.form = nil
			m.overlay = overlayNone
			return m, nil
		}
	}
	return m, cmd
}

// submitCustom opens the custom order link, or leaves a warning and does nothing
// else when the requirement is blank.
func (m Model) submitCustom(requirement string) (Model, tea.Cmd) {
	link, err := m.composer.CustomLink(requirement)
	if err != nil {
		m.warning = requirementWarning
		return m, nil
	}
	m.warning = ""
	m.status = "Opening WhatsApp…"
	m.logger.Info("custom order started", zap.Int("length", len(strings.TrimSpace(requirement))))
	return m, openLink(m.opener, link)
}
