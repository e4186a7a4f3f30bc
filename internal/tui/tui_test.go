package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	appLog "github.com/hazadus/go-confplan/internal/log"
)

// TestRedirectLogToFile проверяет, что журнал пишется в файл, а не на терминал
func TestRedirectLogToFile(t *testing.T) {
	var terminal bytes.Buffer
	appLog.SetOutput(&terminal)
	defer appLog.SetOutput(os.Stderr)

	logPath := filepath.Join(t.TempDir(), "confplan.log")
	restore, err := redirectLog(logPath)
	if err != nil {
		t.Fatalf("Ошибка перенаправления журнала: %v", err)
	}

	appLog.Info("schedule refreshed", "days", 2)
	restore()

	if terminal.Len() != 0 {
		t.Errorf("Журнал не должен попадать на терминал, получено: %s", terminal.String())
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Ошибка чтения журнала: %v", err)
	}
	if !strings.Contains(string(content), "schedule refreshed days=2") {
		t.Errorf("Ожидалась запись в файле журнала, получено: %s", content)
	}

	// После восстановления вывод снова идет на прежний writer
	appLog.Info("after tui")
	if !strings.Contains(terminal.String(), "after tui") {
		t.Errorf("Ожидалось восстановление вывода, получено: %s", terminal.String())
	}
}

// TestRedirectLogDiscard проверяет, что без файла журнал отключается
func TestRedirectLogDiscard(t *testing.T) {
	var terminal bytes.Buffer
	appLog.SetOutput(&terminal)
	defer appLog.SetOutput(os.Stderr)

	restore, err := redirectLog("")
	if err != nil {
		t.Fatalf("Ошибка перенаправления журнала: %v", err)
	}
	appLog.Info("hidden")
	restore()

	if terminal.Len() != 0 {
		t.Errorf("Журнал не должен попадать на терминал, получено: %s", terminal.String())
	}
}
