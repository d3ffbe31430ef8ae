package service

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "github.com/mohitmore9417-afk/edua-ai/internals/features/school/classes/model"
)

// The per-row predicates of the original schema, enforced as query
// scopes: teachers own their classes, students see classes they are
// enrolled in, admin sees everything.

var ErrClassNotFound = errors.New("class not found")

// FindClass loads a class or returns ErrClassNotFound.
func FindClass(db *gorm.DB, classID uuid.UUID) (*classModel.ClassModel, error) {
	var cls classModel.ClassModel
	if err := db.First(&cls, "class_id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &cls, nil
}

// EnsureClassTeacher verifies the caller owns the class (or is admin).
func EnsureClassTeacher(db *gorm.DB, classID, userID uuid.UUID, isAdmin bool) (*classModel.ClassModel, error) {
	cls, err := FindClass(db, classID)
	if err != nil {
		return nil, err
	}
	if isAdmin || cls.ClassTeacherID == userID {
		return cls, nil
	}
	return nil, fiber.NewError(fiber.StatusForbidden, "You do not own this class")
}

// IsClassMember reports whether the user is enrolled in the class.
func IsClassMember(db *gorm.DB, classID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&classModel.EnrollmentModel{}).
		Where("enrollment_class_id = ? AND enrollment_student_id = ?", classID, studentID).
		Count(&count).Error
	return count > 0, err
}

// EnsureClassAccess allows the owning teacher, enrolled students, and admin.
func EnsureClassAccess(db *gorm.DB, classID, userID uuid.UUID, role string) (*classModel.ClassModel, error) {
	cls, err := FindClass(db, classID)
	if err != nil {
		return nil, err
	}
	if role == "admin" || cls.ClassTeacherID == userID {
		return cls, nil
	}
	ok, err := IsClassMember(db, classID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fiber.NewError(fiber.StatusForbidden, "You are not a member of this class")
	}
	return cls, nil
}

// EnrolledClassIDs returns the ids of all classes the student joined.
func EnrolledClassIDs(db *gorm.DB, studentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&classModel.EnrollmentModel{}).
		Where("enrollment_student_id = ?", studentID).
		Pluck("enrollment_class_id", &ids).Error
	return ids, err
}

const classCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateClassCode returns a 6-char join code (no 0/O/1/I).
func GenerateClassCode() (string, error) {
	buf := make([]byte, 6)
	max := big.NewInt(int64(len(classCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = classCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
