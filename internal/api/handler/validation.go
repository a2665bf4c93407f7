package handler

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"schedopt/internal/model"
)

// RegisterValidators 注册自定义 binding 校验标签
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("binding 校验引擎类型不支持: %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("day_abbr", validateDayAbbr); err != nil {
		return fmt.Errorf("注册 day_abbr 校验失败: %w", err)
	}
	return nil
}

// validateDayAbbr 星期代码或单日全称
func validateDayAbbr(fl validator.FieldLevel) bool {
	_, err := model.ParseDayAbbr(fl.Field().String())
	return err == nil
}
