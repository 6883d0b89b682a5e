package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/myservicehub/ServiceHub-sub004/api"
	"github.com/myservicehub/ServiceHub-sub004/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// jobsCmd queries the marketplace live, without touching the local
// catalogue.
func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse marketplace jobs",
	}

	cmd.AddCommand(
		jobsListCmd(),
		jobsShowCmd(),
	)

	return cmd
}

func jobsListCmd() *cobra.Command {
	var status, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs from the server",
		Run: func(cmd *cobra.Command, args []string) {
			listRemoteJobs(cmd, status, category)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "",
		"Filter by status [open, assigned, in_progress, completed, cancelled]")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	return cmd
}

func listRemoteJobs(cmd *cobra.Command, status, category string) {
	if status != "" && !isValidStatus(status) {
		cmd.PrintErrln("Error: Invalid status. Valid values: open, assigned, in_progress, completed, cancelled.")
		return
	}

	stack, err := newAPIStack()
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	jobs, err := stack.api.Jobs(context.Background(), api.JobListOptions{Status: status, Category: category})
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch jobs")
		cmd.PrintErrln("Error:", describeError(err).Error())
		return
	}
	if len(jobs) == 0 {
		cmd.Println("No jobs found.")
		return
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Job ID", "Title", "Category", "Status", "Budget"})
	table.SetColMinWidth(1, 40)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, job := range jobs {
		table.Append([]string{
			fmt.Sprintf("%d", job.ID),
			strings.ReplaceAll(job.Title, "\n", " "),
			job.Category,
			job.Status,
			fmt.Sprintf("%.2f", job.Budget),
		})
	}

	table.Render()
}

func jobsShowCmd() *cobra.Command {
	var jobID int
	var withQuotes, withReviews bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a job with its quotes and reviews",
		Run: func(cmd *cobra.Command, args []string) {
			showRemoteJob(cmd, jobID, withQuotes, withReviews)
		},
	}

	cmd.Flags().IntVarP(&jobID, "id", "i", 0, "ID of the job to show")
	cmd.Flags().BoolVarP(&withQuotes, "quotes", "q", true, "Include quotes? [true, false]")
	cmd.Flags().BoolVarP(&withReviews, "reviews", "r", false, "Include reviews? [true, false]")

	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}

	return cmd
}

func showRemoteJob(cmd *cobra.Command, jobID int, withQuotes, withReviews bool) {
	if err := validation.ValidateJobID(jobID); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	stack, err := newAPIStack()
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	ctx := context.Background()
	job, err := stack.api.Job(ctx, jobID)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to fetch job with ID=%d", jobID)
		cmd.PrintErrln("Error:", describeError(err).Error())
		return
	}

	cmd.Printf("Job #%d: %s\n", job.ID, job.Title)
	if job.Description != "" {
		cmd.Printf("Description: %s\n", job.Description)
	}
	cmd.Printf("Category: %s\n", job.Category)
	if job.Location != "" {
		cmd.Printf("Location: %s\n", job.Location)
	}
	cmd.Printf("Status: %s\n", job.Status)
	cmd.Printf("Budget: %.2f\n", job.Budget)

	if withQuotes {
		quotes, err := stack.api.QuotesForJob(ctx, jobID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to fetch quotes")
			cmd.PrintErrln("Error: Failed to fetch quotes for the job.")
		} else if len(quotes) == 0 {
			cmd.Println("No quotes yet.")
		} else {
			cmd.Printf("Quotes (%d):\n", len(quotes))
			for _, quote := range quotes {
				cmd.Printf("  #%d worker %d offers %.2f (%s)\n", quote.ID, quote.WorkerID, quote.Price, quote.Status)
			}
		}
	}

	if withReviews {
		reviews, err := stack.api.Reviews(ctx, jobID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to fetch reviews")
			cmd.PrintErrln("Error: Failed to fetch reviews for the job.")
		} else if len(reviews) == 0 {
			cmd.Println("No reviews yet.")
		} else {
			cmd.Printf("Reviews (%d):\n", len(reviews))
			for _, review := range reviews {
				cmd.Printf("  %d/5 by user %d: %s\n", review.Rating, review.AuthorID, review.Comment)
			}
		}
	}
}
