package service

import (
	"petshop-backend/internal/errors"
	"time"
)

const cardNumberLength = 16

// ValidateCardNumber 要求恰好16位ASCII数字并通过 Luhn 校验
func ValidateCardNumber(number string) error {
	if len(number) != cardNumberLength {
		return errors.New(errors.ErrInvalidCard, "Card number must be 16 digits")
	}
	if !isDigits(number) {
		return errors.New(errors.ErrInvalidCard, "Card number must contain only digits")
	}
	if !LuhnValid(number) {
		return errors.New(errors.ErrInvalidCard, "Invalid card number")
	}
	return nil
}

// LuhnValid 从右向左，每隔一位加倍，大于9则减9，总和能被10整除
func LuhnValid(digits string) bool {
	if digits == "" || !isDigits(digits) {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidateExpiry 月份1-12，不早于当前年月，且不超过当前年份+10
func ValidateExpiry(month, year int, now time.Time) error {
	if month < 1 || month > 12 {
		return errors.New(errors.ErrInvalidCard, "Invalid expiry month")
	}
	curYear, curMonth := now.Year(), int(now.Month())
	if year < curYear || (year == curYear && month < curMonth) {
		return errors.New(errors.ErrInvalidCard, "Card has expired")
	}
	if year > curYear+10 {
		return errors.New(errors.ErrInvalidCard, "Invalid expiry year")
	}
	return nil
}

// ValidateCVV 3或4位数字
func ValidateCVV(cvv string) error {
	if (len(cvv) != 3 && len(cvv) != 4) || !isDigits(cvv) {
		return errors.New(errors.ErrInvalidCard, "CVV must be 3 or 4 digits")
	}
	return nil
}

// MaskCardNumber 只保留后四位
func MaskCardNumber(number string) string {
	return "****" + lastFour(number)
}

func lastFour(number string) string {
	if len(number) < 4 {
		return number
	}
	return number[len(number)-4:]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
