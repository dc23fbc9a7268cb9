package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
	"strings"

	"github.com/da-hostinger/planning-admin/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"María", "Carmen", "Ana", "Laura", "Lucía", "Marta", "Elena", "Paula", "Sara", "Isabel",
	"Antonio", "José", "Manuel", "Francisco", "David", "Javier", "Daniel", "Carlos", "Miguel", "Pablo",
}

var surnames = []string{
	"García", "Rodríguez", "González", "Fernández", "López", "Martínez", "Sánchez", "Pérez",
	"Gómez", "Martín", "Jiménez", "Ruiz", "Hernández", "Díaz", "Moreno", "Muñoz", "Álvarez", "Romero",
}

func GenerateRandomSpanishName() string {
	return fmt.Sprintf("%s %s %s",
		firstNames[mrand.Intn(len(firstNames))],
		surnames[mrand.Intn(len(surnames))],
		surnames[mrand.Intn(len(surnames))],
	)
}

var accents = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u", "Ñ", "n",
)

// GenerateEmailFromName construye nombre.apellido<dígitos>@domain a partir de un nombre completo.
func GenerateEmailFromName(fullName string, domainName string) string {
	parts := strings.Fields(strings.ToLower(accents.Replace(fullName)))
	local := "usuario"
	if len(parts) >= 2 {
		local = parts[0] + "." + parts[1]
	} else if len(parts) == 1 {
		local = parts[0]
	}

	return fmt.Sprintf("%s%d@%s", local, mrand.Intn(1000), domainName)
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomSpanishName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.User{
		Email:        GenerateEmailFromName(fullName, emailDomainName),
		FullName:     fullName,
		PasswordHash: string(passwordHash),
		Role:         domain.RoleReadonly,
		IsActive:     true,
	}, nil
}

const digits = "0123456789"

var letters = []rune("abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789!@#$%&*")

func randomIndex(n int) int {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand no falla en las plataformas soportadas
		panic(err)
	}
	return int(i.Int64())
}

func GenerateRandomOTP() string {
	otp := make([]byte, 6)
	for i := range otp {
		otp[i] = digits[randomIndex(len(digits))]
	}
	return string(otp)
}

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[randomIndex(len(letters))]
	}
	return string(password)
}
