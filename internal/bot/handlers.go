package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inpredservice11-beep/instruments/internal/models"
	"github.com/inpredservice11-beep/instruments/internal/report"
	"github.com/inpredservice11-beep/instruments/internal/repository"
	"gopkg.in/telebot.v4"
)

const (
	// requestTimeout bounds every repository call made from a handler.
	requestTimeout = 3 * time.Second

	// stateAwaitingSearch indicates that the bot is waiting for a search query.
	stateAwaitingSearch = "awaiting_search"

	// maxSearchResults caps the search reply so one chatty query does not
	// flood the chat.
	maxSearchResults = 10
)

// ErrInternal is the fallback reply for any repository failure.
const ErrInternal = "🚫 Internal server error, please try again later"

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "id", ctx.Sender().ID, "username", ctx.Sender().Username)
	b.metrics.CommandReceived.WithLabelValues("start").Inc()

	responseText := "🔧 Welcome to the tool room!\nPick an action from the menu below."

	b.metrics.SentMessages.WithLabelValues("text").Inc()
	return ctx.Send(responseText, mainMenu)
}

// searchHandler prompts the user for a search query. The actual lookup
// happens in textHandler once the next message arrives.
func (b *Bot) searchHandler(ctx telebot.Context) error {
	b.metrics.CommandReceived.WithLabelValues("search").Inc()
	b.stateManager.Set(ctx.Sender().ID, UserState{WaitingFor: stateAwaitingSearch})

	return ctx.Send("🔍 Enter a tool name, inventory number or barcode:")
}

// textHandler processes incoming text messages from users. The only
// stateful flow is the tool search; any other free text gets a nudge
// towards the menu.
func (b *Bot) textHandler(ctx telebot.Context) error {
	userID := ctx.Sender().ID

	state, ok := b.stateManager.Get(userID)
	if !ok || state.WaitingFor != stateAwaitingSearch {
		return ctx.Reply("🐒 Use buttons, my little monkeys. Who did I make them for?")
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	query := ctx.Text()
	b.log.Debug("User is searching for a tool", "user", userID, "query", query)

	startTime := time.Now()
	tools, err := b.catalog.ListTools(timeoutCtx, repository.ToolFilter{Query: query})
	b.metrics.DBQueryDuration.WithLabelValues("list_tools").Observe(time.Since(startTime).Seconds())
	if err != nil {
		b.log.Error("Failed to search tools", "error", err, "query", query)
		b.metrics.SentMessages.WithLabelValues("error").Inc()
		return ctx.Send(ErrInternal)
	}

	if len(tools) == 0 {
		// The reply invites a retry, so the next message is still a query.
		b.stateManager.Set(userID, UserState{WaitingFor: stateAwaitingSearch})
		return ctx.Send(fmt.Sprintf("🤷 Nothing found for %q. Try again:", query))
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("🔎 *Found %d tool(s)*:\n\n", len(tools)))
	for i, tool := range tools {
		if i == maxSearchResults {
			builder.WriteString(fmt.Sprintf("\n_… and %d more, refine your query_", len(tools)-maxSearchResults))
			break
		}
		builder.WriteString(fmt.Sprintf(" • *%s* (%s) — %s\n", tool.Name, tool.InventoryNumber, tool.Status.Label()))
	}

	b.metrics.SentMessages.WithLabelValues("text").Inc()
	return ctx.Send(builder.String(), telebot.ModeMarkdown)
}

// activeIssuesHandler lists every open issuance with its holder and deadline.
func (b *Bot) activeIssuesHandler(ctx telebot.Context) error {
	b.log.Info("User requested active issues", "user", ctx.Sender().ID)
	b.metrics.CommandReceived.WithLabelValues("active_issues").Inc()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	startTime := time.Now()
	issues, err := b.issues.ActiveIssues(timeoutCtx)
	b.metrics.DBQueryDuration.WithLabelValues("get_active_issues").Observe(time.Since(startTime).Seconds())
	if err != nil {
		b.log.Error("Failed to fetch active issues", "error", err)
		b.metrics.SentMessages.WithLabelValues("error").Inc()
		return ctx.Send(ErrInternal)
	}

	if len(issues) == 0 {
		return ctx.Send("✅ No tools are out right now, everything is on the shelf.")
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📋 *Active issues: %d*\n\n", len(issues)))
	for _, issue := range issues {
		builder.WriteString(fmt.Sprintf(
			" • *%s* (%s) — %s, until %s\n",
			issue.ToolName, issue.InventoryNumber, issue.EmployeeName,
			issue.ExpectedReturn.Format("02.01.2006"),
		))
		if issue.AddressName != "" {
			builder.WriteString(fmt.Sprintf("   📍 %s\n", issue.AddressName))
		}
	}

	b.metrics.SentMessages.WithLabelValues("text").Inc()
	return ctx.Send(builder.String(), telebot.ModeMarkdown)
}

// overdueHandler lists open issuances whose deadline has passed, with
// how many days each one is late.
func (b *Bot) overdueHandler(ctx telebot.Context) error {
	b.log.Info("User requested overdue issues", "user", ctx.Sender().ID)
	b.metrics.CommandReceived.WithLabelValues("overdue").Inc()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	startTime := time.Now()
	candidates, err := b.issues.ActiveIssuesForReturn(timeoutCtx)
	b.metrics.DBQueryDuration.WithLabelValues("get_issues_for_return").Observe(time.Since(startTime).Seconds())
	if err != nil {
		b.log.Error("Failed to fetch overdue issues", "error", err)
		b.metrics.SentMessages.WithLabelValues("error").Inc()
		return ctx.Send(ErrInternal)
	}

	now := time.Now()
	var builder strings.Builder
	overdueCount := 0
	for _, candidate := range candidates {
		if !candidate.Overdue {
			continue
		}
		overdueCount++
		builder.WriteString(fmt.Sprintf(
			" • *%s* (%s) — %s, %d day(s) overdue\n",
			candidate.ToolName, candidate.InventoryNumber, candidate.EmployeeName,
			models.OverdueDays(candidate.ExpectedReturn, now),
		))
	}

	if overdueCount == 0 {
		return ctx.Send("✅ Nothing is overdue. For now.")
	}

	b.metrics.SentMessages.WithLabelValues("text").Inc()
	return ctx.Send(
		fmt.Sprintf("⏰ *Overdue: %d*\n\n%s", overdueCount, builder.String()),
		telebot.ModeMarkdown,
	)
}

// statisticsHandler sends the dashboard headline: store totals plus the
// usage-time aggregate and the busiest employees.
func (b *Bot) statisticsHandler(ctx telebot.Context) error {
	b.log.Info("User requested stats", "user", ctx.Sender().ID)
	b.metrics.CommandReceived.WithLabelValues("statistics").Inc()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	responseText, err := b.generateStatisticString(timeoutCtx)
	if err != nil {
		b.log.Error("Failed to generate statistics", "error", err)
		b.metrics.SentMessages.WithLabelValues("error").Inc()
		return ctx.Send(ErrInternal)
	}

	b.metrics.SentMessages.WithLabelValues("text").Inc()
	return ctx.Send(responseText, telebot.ModeMarkdown)
}

// generateStatisticString formats the dashboard message. A store with no
// returned issuances yet simply omits the usage-time block.
func (b *Bot) generateStatisticString(ctx context.Context) (string, error) {
	startTime := time.Now()
	stats, err := b.stats.GetGeneralStats(ctx)
	b.metrics.DBQueryDuration.WithLabelValues("get_general_stats").Observe(time.Since(startTime).Seconds())
	if err != nil {
		return "", fmt.Errorf("failed to get general stats: %w", err)
	}

	var builder strings.Builder
	builder.WriteString("📊 *Tool room stats*:\n\n")
	builder.WriteString(fmt.Sprintf("🔧 Tools: %d total\n", stats.TotalTools))
	builder.WriteString(fmt.Sprintf(" • Available: %d\n", stats.AvailableTools))
	builder.WriteString(fmt.Sprintf(" • Issued: %d\n", stats.IssuedTools))
	builder.WriteString(fmt.Sprintf(" • In repair: %d\n", stats.InRepairTools))
	builder.WriteString(fmt.Sprintf(" • Written off: %d\n", stats.WrittenOffTools))
	builder.WriteString(fmt.Sprintf("\n👷 Active employees: %d\n", stats.ActiveEmployees))
	builder.WriteString(fmt.Sprintf("📋 Active issues: %d (overdue: %d)\n", stats.ActiveIssues, stats.OverdueIssues))
	builder.WriteString(fmt.Sprintf("📜 History entries: %d\n", stats.HistoryEntries))

	usage, err := b.stats.GetUsageTime(ctx)
	switch {
	case errors.Is(err, repository.ErrNoData):
		// Nothing returned yet, skip the block.
	case err != nil:
		return "", fmt.Errorf("failed to get usage time: %w", err)
	default:
		builder.WriteString(fmt.Sprintf(
			"\n⏱ Usage time over %d return(s): avg %.1f, min %d, max %d day(s)\n",
			usage.ReturnedCount, usage.AverageDays, usage.MinDays, usage.MaxDays,
		))
	}

	topEmployeesLimit := 3
	topEmployees, err := b.stats.GetTopEmployees(ctx, topEmployeesLimit)
	if err != nil {
		return "", fmt.Errorf("failed to get top employees: %w", err)
	}
	if len(topEmployees) > 0 {
		builder.WriteString("\n👑 *Top employees*:\n")
		for _, employee := range topEmployees {
			builder.WriteString(fmt.Sprintf(
				" • %s: %d issue(s), %d active\n",
				employee.FullName, employee.TotalIssues, employee.ActiveIssues,
			))
		}
	}

	return builder.String(), nil
}

// reportHandler generates the active-issues Excel workbook and sends it
// as a document.
func (b *Bot) reportHandler(ctx telebot.Context) error {
	userID := ctx.Sender().ID
	b.log.Info("User requested Excel report", "user", userID)
	b.metrics.CommandReceived.WithLabelValues("report").Inc()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := ctx.Send("⏳ Generating report, hold on..."); err != nil {
		b.log.Warn("Failed to send progress message", "error", err)
	}

	queryStart := time.Now()
	issues, err := b.issues.ActiveIssues(timeoutCtx)
	b.metrics.DBQueryDuration.WithLabelValues("get_active_issues").Observe(time.Since(queryStart).Seconds())
	if err != nil {
		b.log.Error("Failed to fetch active issues for report", "error", err)
		b.metrics.SentMessages.WithLabelValues("error").Inc()
		return ctx.Send(ErrInternal)
	}

	start := time.Now()
	reportBuffer, err := report.GenerateActiveIssuesReport(issues, time.Now())
	if err != nil {
		if errors.Is(err, report.ErrNoIssues) {
			return ctx.Send("🤷 No active issues, nothing to report on.")
		}
		b.log.Error("Failed to generate report", "error", err, "user", userID)
		b.metrics.SentMessages.WithLabelValues("error").Inc()
		return ctx.Send(ErrInternal)
	}
	b.metrics.ReportGeneration.WithLabelValues("active_issues").Observe(time.Since(start).Seconds())

	reportFile := &telebot.Document{
		File:     telebot.FromReader(reportBuffer),
		FileName: fmt.Sprintf("active_issues_%s.xlsx", uuid.NewString()),
		MIME:     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}

	b.log.Info("Successfully generated report", "user", userID, "issues", len(issues))
	b.metrics.SentMessages.WithLabelValues("document").Inc()
	return ctx.Send(reportFile)
}
