// admintoken 使用配置中的密钥签发管理员 Token，供 POST /api/update 使用
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"schedopt/config"
	"schedopt/pkg/jwt"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径")
	subject := flag.String("subject", "admin", "Token 主体（记录在调整日志中）")
	ttl := flag.Duration("ttl", 0, "有效期，默认使用 auth.access_token_ttl")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if len(cfg.Auth.JWTSecret) < 16 {
		fmt.Fprintln(os.Stderr, "auth.jwt_secret 未配置或长度不足 16 字符")
		os.Exit(1)
	}

	token, err := jwt.NewManager(&cfg.Auth).GenerateToken(*subject, jwt.RoleAdmin, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "签发 Token 失败: %v\n", err)
		os.Exit(1)
	}

	expires := *ttl
	if expires <= 0 {
		expires = cfg.Auth.AccessTokenTTL
	}
	fmt.Fprintf(os.Stderr, "subject=%s 有效期=%s（至 %s）\n", *subject, expires, time.Now().Add(expires).Format(time.RFC3339))
	fmt.Println(token)
}
