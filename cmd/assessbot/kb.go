package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jkruckivey/assessments/internal/config"
	"github.com/jkruckivey/assessments/internal/knowledge"
	"github.com/jkruckivey/assessments/internal/service/assistant"
	"github.com/jkruckivey/assessments/internal/service/ui"
	"github.com/spf13/cobra"
)

var kbCmd = &cobra.Command{
	Use:   "kb",
	Short: "Inspect the knowledge base",
}

var kbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		docs := loadKnowledge(cmd)

		rows := make([][]string, 0, docs.Len())
		for _, doc := range docs.Documents() {
			rows = append(rows, []string{doc.Key, doc.Title, string(doc.Category)})
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"KEY", "TITLE", "CATEGORY"}, rows))
		return err
	},
}

var kbSearchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Show the documents a question would be answered from",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs := loadKnowledge(cmd)
		scored := assistant.ScoreDocuments(strings.Join(args, " "), docs)

		out := cmd.OutOrStdout()
		if len(scored) == 0 {
			_, err := fmt.Fprintln(out, ui.DescStyle.Render("No matching documents."))
			return err
		}

		rows := make([][]string, 0, assistant.MaxContextDocuments)
		for i, sd := range scored {
			if i == assistant.MaxContextDocuments {
				break
			}
			rows = append(rows, []string{strconv.Itoa(sd.Score), sd.Key, sd.Title, string(sd.Category)})
		}
		_, err := fmt.Fprintln(out, renderTable([]string{"SCORE", "KEY", "TITLE", "CATEGORY"}, rows))
		return err
	},
}

func loadKnowledge(cmd *cobra.Command) *knowledge.Store {
	ctx, flushLog := setupLogger(cmd.Context(), os.Stderr)
	defer flushLog()

	loadEnv(ctx)
	return knowledge.Load(ctx, config.NewAppConfig(ctx).GetKnowledgePath())
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(ui.TableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.TableHeaderStyle
			}
			return ui.TableCellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func init() {
	kbCmd.AddCommand(kbListCmd, kbSearchCmd)
	rootCmd.AddCommand(kbCmd)
}
