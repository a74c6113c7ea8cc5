package queue

import (
	"database/sql"
	"errors"
	"time"
)

const jobColumns = "id, source_path, status, request_id, audio_path, transcript_path, diarization_path, srt_path, transcript_text_path, error_message, progress_message, created_at, updated_at"

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id              int64
		sourcePath      string
		statusStr       string
		requestID       sql.NullString
		audioPath       sql.NullString
		transcriptPath  sql.NullString
		diarizationPath sql.NullString
		srtPath         sql.NullString
		textPath        sql.NullString
		errorMessage    sql.NullString
		progressMessage sql.NullString
		createdRaw      sql.NullString
		updatedRaw      sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&sourcePath,
		&statusStr,
		&requestID,
		&audioPath,
		&transcriptPath,
		&diarizationPath,
		&srtPath,
		&textPath,
		&errorMessage,
		&progressMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:                 id,
		SourcePath:         sourcePath,
		Status:             Status(statusStr),
		RequestID:          requestID.String,
		AudioPath:          audioPath.String,
		TranscriptPath:     transcriptPath.String,
		DiarizationPath:    diarizationPath.String,
		SRTPath:            srtPath.String,
		TranscriptTextPath: textPath.String,
		ErrorMessage:       errorMessage.String,
		ProgressMessage:    progressMessage.String,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		job.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		job.UpdatedAt = updated
	}
	return job, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
