package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/myservicehub/ServiceHub-sub004/api"
	"github.com/myservicehub/ServiceHub-sub004/config"
	"github.com/myservicehub/ServiceHub-sub004/db"
	"github.com/myservicehub/ServiceHub-sub004/gateway"
	"github.com/myservicehub/ServiceHub-sub004/pkg/pool"
	"github.com/myservicehub/ServiceHub-sub004/pkg/validation"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// catalogueCmd manages the local copy of the job catalogue. The catalogue
// is a cache; refresh replaces it with what the server currently reports.
func catalogueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Manage the local job catalogue",
	}

	cmd.AddCommand(
		listCmd(),
		searchCmd(),
		infoCmd(),
		refreshCmd(),
		exportCmd(),
	)

	return cmd
}

// listCmd shows the list of jobs in the local catalogue
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all jobs in the local catalogue",
		Run:   listJobs,
	}
}

func listJobs(cmd *cobra.Command, args []string) {
	log.Info().Msg("Listing all jobs in the catalogue...")

	jobs, err := db.NewJobRepository(db.GetDB()).List(context.Background())
	if err != nil {
		cmd.PrintErrln("Error: Unable to list jobs. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to fetch jobs from the local catalogue.")
		return
	}

	if len(jobs) == 0 {
		cmd.Println("No jobs found in the catalogue. Use `servicehub catalogue refresh` to update it.")
		return
	}

	renderJobTable(cmd, jobs)

	log.Info().Msgf("Successfully listed %d jobs from the catalogue.", len(jobs))
}

// renderJobTable prints jobs from the local catalogue in a table.
func renderJobTable(cmd *cobra.Command, jobs []db.Job) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Job ID", "Title", "Category", "Status", "Budget"})

	// Table appearance settings
	table.SetColMinWidth(1, 40)                      // Set minimum width for the Title column
	table.SetAlignment(tablewriter.ALIGN_LEFT)       // Align all columns to the left
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT) // Align headers to the left
	table.SetAutoWrapText(false)                     // Disable text wrapping in all columns
	table.SetRowLine(false)                          // Disable row line breaks

	for _, job := range jobs {
		// Clean the title to remove line breaks or unnecessary spaces
		cleanedTitle := strings.ReplaceAll(job.Title, "\n", " ")
		table.Append([]string{
			fmt.Sprintf("%d", job.ID),
			cleanedTitle,
			job.Category,
			job.Status,
			fmt.Sprintf("%.2f", job.Budget),
		})
	}

	table.Render()
}

// infoCmd shows detailed information about a specific job, given its ID
func infoCmd() *cobra.Command {
	var jobID int
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show information about a specific job",
		Run: func(cmd *cobra.Command, args []string) {
			showJobInfo(cmd, jobID)
		},
	}

	cmd.Flags().IntVarP(&jobID, "id", "i", 0, "ID of the job to show its information")

	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}

	return cmd
}

func showJobInfo(cmd *cobra.Command, jobID int) {
	if err := validation.ValidateJobID(jobID); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	log.Info().Msgf("Fetching info for job with ID=%d", jobID)

	job, err := db.NewJobRepository(db.GetDB()).GetByID(context.Background(), jobID)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to fetch info for job with ID=%d", jobID)
		cmd.PrintErrln("Error:", err)
		return
	}

	if job == nil {
		log.Info().Msgf("No job found with ID=%d", jobID)
		cmd.Println("No job found with the specified ID.")
		return
	}

	cmd.Println("Job Information:")
	cmd.Printf("ID: %d\n", job.ID)
	cmd.Printf("Title: %s\n", job.Title)
	cmd.Printf("Category: %s\n", job.Category)
	cmd.Printf("Status: %s\n", job.Status)
	cmd.Printf("Budget: %.2f\n", job.Budget)
	cmd.Printf("Data: %s\n", job.Data)
}

// refreshCmd replaces the local catalogue with the jobs the server
// currently reports
func refreshCmd() *cobra.Command {
	var numWorkers int

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Update the local catalogue with the latest jobs from the server",
		Run: func(cmd *cobra.Command, args []string) {
			refreshCatalogue(cmd, numWorkers)
		},
	}

	cmd.Flags().IntVarP(&numWorkers, "workers", "w", config.Load().Workers,
		"Number of workers to use for fetching job details [1-20]")
	return cmd
}

func refreshCatalogue(cmd *cobra.Command, numWorkers int) {
	log.Info().Msg("Refreshing the job catalogue...")

	if err := validation.ValidateWorkerCount(numWorkers); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	stack, err := newAPIStack()
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	loggedIn, err := stack.auth.LoggedIn(gateway.ScopeUser)
	if err != nil {
		cmd.PrintErrln("Error: Failed to read the session store.")
		return
	}
	if !loggedIn {
		cmd.PrintErrln("Error: Not logged in. Please run 'servicehub login' first.")
		return
	}

	ctx := context.Background()
	jobs, err := stack.api.Jobs(ctx, api.JobListOptions{})
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch the job list")
		cmd.PrintErrln("Error: Failed to refresh catalogue. Please check the logs for details.")
		return
	}
	if len(jobs) == 0 {
		cmd.Println("The server reported no jobs.")
		return
	}
	log.Info().Msgf("Found %d jobs on the server.", len(jobs))

	repo := db.NewJobRepository(db.GetDB())
	if err := repo.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to empty the local catalogue.")
		cmd.PrintErrln("Error: Failed to refresh catalogue. Please check the logs for details.")
		return
	}

	log.Info().Msg("Jobs table truncated. Starting data refresh...")

	bar := progressbar.NewOptions(len(jobs),
		progressbar.OptionSetDescription("Refreshing catalogue..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)

	// Listing endpoints return summaries, so each job is fetched again for
	// its full payload before it is stored.
	errs := pool.Run(ctx, jobs, numWorkers, func(ctx context.Context, job api.Job) error {
		defer func() { _ = bar.Add(1) }()

		detail, err := stack.api.Job(ctx, job.ID)
		if err != nil {
			log.Info().Msgf("Failed to fetch details for job ID %d: %v", job.ID, err)
			return err
		}
		data, err := json.Marshal(detail)
		if err != nil {
			return err
		}
		if err := repo.Put(ctx, db.Job{
			ID:       detail.ID,
			Title:    detail.Title,
			Category: detail.Category,
			Status:   detail.Status,
			Budget:   detail.Budget,
			Data:     string(data),
		}); err != nil {
			log.Info().Msgf("Failed to store job ID %d in the catalogue: %v", detail.ID, err)
			return err
		}
		return nil
	})

	_ = bar.Finish()

	if len(errs) > 0 {
		cmd.Printf("Refresh finished with %d of %d jobs failing. Check the logs for details.\n", len(errs), len(jobs))
		return
	}
	cmd.Printf("Refreshing completed successfully. There are %d jobs in the catalogue.\n", len(jobs))
}

// searchCmd searches for jobs in the local catalogue by ID or title
func searchCmd() *cobra.Command {
	var jobID int
	var searchTerm string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for jobs in the catalogue by ID or title",
		Run: func(cmd *cobra.Command, args []string) {
			searchJobs(cmd, jobID, searchTerm)
		},
	}

	cmd.Flags().IntVarP(&jobID, "id", "i", 0, "ID of the job to search for")
	cmd.Flags().StringVarP(&searchTerm, "term", "t", "", "Search term to search for;"+
		" search is case-insensitive and does partial matching of the term with the job title")
	return cmd
}

func searchJobs(cmd *cobra.Command, jobID int, searchTerm string) {
	if jobID == 0 && searchTerm == "" {
		cmd.PrintErrln("Error: one of the flags --id or --term is required. Use `servicehub catalogue search -h` for more information.")
		return
	}

	// Check not both flags are provided
	if jobID != 0 && searchTerm != "" {
		cmd.PrintErrln("Error: only one of the flags --id or --term is required. Use `servicehub catalogue search -h` for more information.")
		return
	}

	var jobs []db.Job
	var err error
	repo := db.NewJobRepository(db.GetDB())

	if jobID != 0 {
		log.Info().Msgf("Searching for job with ID=%d", jobID)
		job, err := repo.GetByID(context.Background(), jobID)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to fetch job with ID=%d", jobID)
			cmd.PrintErrln("Error:", err)
			return
		}
		if job != nil {
			jobs = append(jobs, *job)
		}
	}

	if searchTerm != "" {
		log.Info().Msgf("Searching for jobs with term=%s in the title", searchTerm)
		jobs, err = repo.SearchByTitle(context.Background(), searchTerm)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to search jobs with term=%s in the title", searchTerm)
			cmd.PrintErrln("Error:", err)
			return
		}
	}

	if len(jobs) == 0 {
		cmd.Printf("No job(s) found matching the search criteria.\n")
		return
	}

	renderJobTable(cmd, jobs)
}

// exportCmd exports the job catalogue to a file in JSON or CSV format
func exportCmd() *cobra.Command {
	exportPath := ""
	exportFormat := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the job catalogue to a file",
		Run: func(cmd *cobra.Command, args []string) {
			exportCatalogue(cmd, exportPath, exportFormat)
		},
	}

	cmd.Flags().StringVarP(&exportPath, "dir", "d", "", "Directory to export the file into (required)")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format: json or csv (required)")

	if err := cmd.MarkFlagRequired("dir"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'dir' flag as required")
	}
	if err := cmd.MarkFlagRequired("format"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'format' flag as required")
	}

	return cmd
}

func exportCatalogue(cmd *cobra.Command, exportPath, exportFormat string) {
	log.Info().Msg("Exporting the job catalogue...")

	if exportPath == "" {
		cmd.PrintErrln("Error: Export directory is required.")
		return
	}

	// Ensure the directory exists or create it
	if err := os.MkdirAll(exportPath, os.ModePerm); err != nil {
		log.Error().Err(err).Msg("Failed to create export directory.")
		cmd.PrintErrln("Error: Failed to create export directory.")
		return
	}

	if exportFormat != "json" && exportFormat != "csv" {
		log.Error().Msg("Invalid export format. Supported formats: json, csv")
		cmd.PrintErrln("Error: Invalid export format. Supported formats: json, csv")
		return
	}

	jobs, err := db.NewJobRepository(db.GetDB()).List(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read the local catalogue.")
		cmd.PrintErrln("Error: Failed to export the job catalogue.")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	fileName := fmt.Sprintf("servicehub_catalogue_%s.%s", timestamp, exportFormat)
	filePath := filepath.Join(exportPath, fileName)

	if exportFormat == "json" {
		err = writeJobsToJSON(filePath, jobs)
	} else {
		err = writeJobsToCSV(filePath, jobs)
	}

	if err != nil {
		log.Error().Err(err).Msg("Failed to export the job catalogue.")
		cmd.PrintErrln("Error: Failed to export the job catalogue.")
		return
	}

	cmd.Printf("Catalogue exported to %s\n", filePath)
	log.Info().Msgf("Job catalogue exported successfully to %s.", filePath)
}

// writeJobsToCSV writes the jobs to a CSV file.
func writeJobsToCSV(path string, jobs []db.Job) error {
	file, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to create CSV file %s", path)
		return err
	}
	defer file.Close()

	if _, err := file.WriteString("ID,Title,Category,Status,Budget\n"); err != nil {
		log.Error().Err(err).Msg("Failed to write CSV header to file")
		return err
	}

	for _, job := range jobs {
		line := fmt.Sprintf("%d,%q,%s,%s,%.2f\n", job.ID, job.Title, job.Category, job.Status, job.Budget)
		if _, err := file.WriteString(line); err != nil {
			log.Error().Err(err).Msgf("Failed to write job %d to CSV file", job.ID)
			return err
		}
	}

	return nil
}

// writeJobsToJSON writes the jobs to a JSON file.
func writeJobsToJSON(path string, jobs []db.Job) error {
	file, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to create JSON file %s", path)
		return err
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(jobs); err != nil {
		log.Error().Err(err).Msg("Failed to write jobs to JSON file")
		return err
	}

	return nil
}
