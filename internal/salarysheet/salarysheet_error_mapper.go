package salarysheet

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	salarysheeterrors "github.com/harshChauhanCMS/srs-payroll-managment-sub001/internal/salarysheet/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarysheeterrors.ErrTemplateNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_template_company_name" {
			return salarysheeterrors.ErrDuplicateTemplateName
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_template_company_name") {
		return salarysheeterrors.ErrDuplicateTemplateName
	}

	return err
}
