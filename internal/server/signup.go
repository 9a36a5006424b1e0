package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	signupdomain "github.com/griddesk/griddesk/internal/signup/domain"
)

type SignupSkill struct {
	ServiceType string `json:"serviceType"`
	Proficiency int    `json:"proficiency"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`

	Address        string `json:"address"`
	Classification string `json:"classification"`

	Position     string        `json:"position"`
	Department   string        `json:"department"`
	ServiceTypes []string      `json:"serviceTypes"`
	Skills       []SignupSkill `json:"skills"`
}

const defaultSkillProficiency = 3

func (s *Server) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	skills := make([]signupdomain.SkillInput, 0, len(req.Skills)+len(req.ServiceTypes))
	for _, skill := range req.Skills {
		skills = append(skills, signupdomain.SkillInput{
			ServiceType: skill.ServiceType,
			Proficiency: skill.Proficiency,
		})
	}
	// Legacy payloads list bare service types; those get a default rating.
	for _, serviceType := range req.ServiceTypes {
		skills = append(skills, signupdomain.SkillInput{
			ServiceType: serviceType,
			Proficiency: defaultSkillProficiency,
		})
	}

	result, err := s.signupsvc.Signup(c.Request.Context(), signupdomain.Request{
		Username:       req.Username,
		Password:       req.Password,
		DisplayName:    req.Name,
		Role:           req.Role,
		Phone:          req.Phone,
		Address:        req.Address,
		Classification: req.Classification,
		Position:       req.Position,
		Department:     req.Department,
		Skills:         skills,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"result":  result,
	})
}
