package app

import "github.com/charmbracelet/lipgloss"

var (
	paneStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpPane       = paneStyle.Copy().BorderForeground(lipgloss.Color("62"))
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	editStatus     = lipgloss.NewStyle().Foreground(lipgloss.Color("211"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	ruleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	gutterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	markedRowStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	markerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dragStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	editCellStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("211")).Underline(true)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1)
)
