package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmdatafocus/billing_ledger/models"
)

// nextSequenceId returns prefix followed by the highest numeric suffix in use plus one,
// zero padded to four digits. Ids that do not parse are ignored.
func nextSequenceId(records []models.Document, field string, prefix string) string {
	highest := 0
	for _, record := range records {
		id := strings.TrimSpace(record.String(field))
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, highest+1)
}

func findRecord(records []models.Document, field string, id string) models.Document {
	id = strings.TrimSpace(id)
	for _, record := range records {
		if strings.TrimSpace(record.String(field)) == id {
			return record
		}
	}
	return nil
}
